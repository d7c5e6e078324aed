// Package auth issues and verifies the signed session tokens carried by a
// Session. Tokens are HS256 JWTs whose claims hold the public user fields.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/rentdesk/internal/common"
	"github.com/dmitrijs2005/rentdesk/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims plus the session's user.
type Claims struct {
	jwt.RegisteredClaims
	User models.AuthUser `json:"user"`
}

// GenerateToken signs a token for user. A non-positive validity produces a
// token without expiry.
func GenerateToken(user models.AuthUser, secretKey []byte, validity time.Duration, now time.Time) (string, error) {
	id, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}

	rc := jwt.RegisteredClaims{
		ID:       id,
		Subject:  user.UID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if validity > 0 {
		rc.ExpiresAt = jwt.NewNumericDate(now.Add(validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: rc, User: user})
	return token.SignedString(secretKey)
}

// ParseToken verifies tokenString at time now and returns the user it was
// issued for. Expired tokens yield common.ErrTokenExpired, anything else that
// fails verification yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte, now time.Time) (*models.AuthUser, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid || claims.Subject != claims.User.UID {
		return nil, common.ErrInvalidToken
	}

	user := claims.User
	return &user, nil
}
