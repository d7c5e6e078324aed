package directory

import (
	"context"
	"time"

	"github.com/dmitrijs2005/rentdesk/internal/common"
	"github.com/dmitrijs2005/rentdesk/internal/cryptox"
	"github.com/dmitrijs2005/rentdesk/internal/dbx"
	"github.com/dmitrijs2005/rentdesk/internal/kv"
	"github.com/dmitrijs2005/rentdesk/internal/logging"
	"github.com/google/uuid"
)

// Storage keys of the persisted tables.
const (
	KeySession       = "rentalUser"
	KeySessionToken  = "rentalUser.token"
	KeyUsers         = "allUsers"
	KeyRooms         = "rooms"
	KeyRegistrations = "tenantRegistrations"
	KeyPayments      = "tenantPayments"
	KeyResets        = "passwordResets"
)

// DefaultResetCodeValidity is how long a reset code stays usable.
const DefaultResetCodeValidity = time.Hour

// Options tune a Store.
type Options struct {
	// SecretKey signs session tokens. When empty a random key is generated,
	// so persisted sessions do not survive a restart.
	SecretKey []byte
	// SessionValidity bounds a session token's lifetime; zero means no expiry.
	SessionValidity time.Duration
	// ResetCodeValidity defaults to DefaultResetCodeValidity.
	ResetCodeValidity time.Duration
	// HashPasswords stores new passwords as argon2id hashes.
	HashPasswords bool
}

// Store is the directory store. It is meant for a single writer.
type Store struct {
	db   *kv.DB
	log  logging.Logger
	opts Options

	now     func() time.Time
	newCode func() (string, error)
	newUID  func() string
}

// New returns a Store over an opened key-value database.
func New(db *kv.DB, logger logging.Logger, opts Options) *Store {
	if len(opts.SecretKey) == 0 {
		opts.SecretKey = common.GenerateRandByteArray(32)
	}
	if opts.ResetCodeValidity <= 0 {
		opts.ResetCodeValidity = DefaultResetCodeValidity
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &Store{
		db:      db,
		log:     logger.With("component", "directory"),
		opts:    opts,
		now:     func() time.Time { return time.Now().UTC() },
		newCode: cryptox.NewResetCode,
		newUID:  uuid.NewString,
	}
}

// repo returns the key-value table outside of any transaction.
func (s *Store) repo() kv.Repository {
	return s.db.Repo(s.db.Conn)
}

// withTx runs fn with a repository bound to a single transaction.
func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context, repo kv.Repository) error) error {
	return dbx.WithTx(ctx, s.db.Conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, s.db.Repo(tx))
	})
}

func (s *Store) encodePassword(password string) (string, error) {
	if !s.opts.HashPasswords {
		return password, nil
	}
	return cryptox.HashPassword(password)
}
