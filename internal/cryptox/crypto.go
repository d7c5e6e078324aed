// Package cryptox holds the credential primitives of the directory store:
// argon2id password hashing and one-time reset codes.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/dmitrijs2005/rentdesk/internal/common"
	"golang.org/x/crypto/argon2"
)

// argon2id parameters.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

const hashPrefix = "$argon2id$"

var ErrMalformedHash = errors.New("malformed password hash")

func deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// HashPassword returns password as a PHC-style argon2id string.
func HashPassword(password string) (string, error) {
	salt := common.GenerateRandByteArray(saltLen)
	key := deriveKey([]byte(password), salt)

	enc := base64.RawStdEncoding
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		hashPrefix, argon2.Version, argonMemory, argonTime, argonThreads,
		enc.EncodeToString(salt), enc.EncodeToString(key)), nil
}

// IsHashed reports whether stored was produced by HashPassword.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, hashPrefix)
}

// VerifyPassword compares candidate with stored in constant time. stored is
// either an argon2id string or a plaintext password from seed data.
func VerifyPassword(stored, candidate string) bool {
	if !IsHashed(stored) {
		return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
	}

	salt, key, p, err := decodeHash(stored)
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(candidate), salt, p.time, p.memory, p.threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, got) == 1
}

type params struct {
	memory  uint32
	time    uint32
	threads uint8
}

func decodeHash(stored string) (salt, key []byte, p params, err error) {
	// "", "argon2id", "v=19", "m=...,t=...,p=...", salt, key
	parts := strings.Split(stored, "$")
	if len(parts) != 6 {
		return nil, nil, p, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, p, ErrMalformedHash
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return nil, nil, p, ErrMalformedHash
	}

	enc := base64.RawStdEncoding
	if salt, err = enc.DecodeString(parts[4]); err != nil {
		return nil, nil, p, ErrMalformedHash
	}
	if key, err = enc.DecodeString(parts[5]); err != nil || len(key) == 0 {
		return nil, nil, p, ErrMalformedHash
	}
	return salt, key, p, nil
}

var codeSpan = big.NewInt(900000)

// NewResetCode returns a uniformly random six-digit code in [100000, 999999].
func NewResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
