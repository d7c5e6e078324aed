package directory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/rentdesk/internal/auth"
	"github.com/dmitrijs2005/rentdesk/internal/common"
	"github.com/dmitrijs2005/rentdesk/internal/cryptox"
	"github.com/dmitrijs2005/rentdesk/internal/kv"
	"github.com/dmitrijs2005/rentdesk/internal/models"
	"github.com/dmitrijs2005/rentdesk/internal/validation"
)

// Session is an authenticated user together with the signed token that
// proves it. It is what the front end keeps between calls. The store
// persists the user under KeySession and the token under KeySessionToken.
type Session struct {
	User  models.AuthUser `json:"user"`
	Token string          `json:"token"`
}

var seedUsers = []models.User{
	{UID: "1", Name: "Owner Admin", Email: "owner@building.com", Password: "owner123", Role: models.RoleOwner, Phone: "9876543210"},
	{UID: "2", Name: "Tenant One", Email: "tenant1@building.com", Password: "tenant123", Role: models.RoleTenant, Phone: "9876543211"},
	{UID: "3", Name: "Tenant Two", Email: "tenant2@building.com", Password: "tenant123", Role: models.RoleTenant, Phone: "9876543212"},
}

// InitializeUsers writes the seed identities when the identity table does
// not exist yet.
func (s *Store) InitializeUsers(ctx context.Context) error {
	repo := s.repo()

	raw, err := repo.Get(ctx, KeyUsers)
	if err != nil {
		return err
	}
	if raw != nil {
		return nil
	}

	users := make([]models.User, len(seedUsers))
	copy(users, seedUsers)
	if err := saveTable(ctx, repo, KeyUsers, users); err != nil {
		return err
	}
	s.log.Info(ctx, "identity table seeded", "count", len(users))
	return nil
}

// GetAllUsers returns the identity table.
func (s *Store) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, _, err := loadTable[models.User](ctx, s, s.repo(), KeyUsers)
	return users, err
}

// Login authenticates by exact email and password. On success the session
// is persisted and returned; otherwise common.ErrInvalidCredentials.
func (s *Store) Login(ctx context.Context, email, password string) (*Session, error) {
	repo := s.repo()

	users, _, err := loadTable[models.User](ctx, s, repo, KeyUsers)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == email && cryptox.VerifyPassword(u.Password, password) {
			session, err := s.startSession(ctx, repo, u.Public())
			if err != nil {
				return nil, err
			}
			s.log.Info(ctx, "user logged in", "uid", u.UID, "role", u.Role)
			return session, nil
		}
	}

	s.log.Debug(ctx, "login rejected")
	return nil, common.ErrInvalidCredentials
}

func (s *Store) startSession(ctx context.Context, repo kv.Repository, user models.AuthUser) (*Session, error) {
	token, err := auth.GenerateToken(user, s.opts.SecretKey, s.opts.SessionValidity, s.now())
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	b, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	if err := repo.Set(ctx, KeySession, b); err != nil {
		return nil, err
	}
	if err := repo.Set(ctx, KeySessionToken, []byte(token)); err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}

// Logout forgets the persisted session. Logging out twice is not an error.
func (s *Store) Logout(ctx context.Context) error {
	repo := s.repo()
	for _, key := range []string{KeySession, KeySessionToken} {
		if err := repo.Delete(ctx, key); err != nil {
			return err
		}
	}
	s.log.Info(ctx, "user logged out")
	return nil
}

// CurrentSession returns the persisted session, or nil when there is none
// or it can no longer be trusted.
//
// The pointer under KeySession is a plain AuthUser. When a token is stored
// next to it, the token must verify and name the same user. A pointer
// written without a token is accepted and gets a fresh, unpersisted token.
func (s *Store) CurrentSession(ctx context.Context) (*Session, error) {
	repo := s.repo()

	raw, err := repo.Get(ctx, KeySession)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var user models.AuthUser
	if err := json.Unmarshal(raw, &user); err != nil {
		s.log.Warn(ctx, "session pointer unreadable", "error", err)
		return nil, nil
	}
	if err := validation.Struct(user); err != nil {
		s.log.Warn(ctx, "session pointer invalid", "error", err)
		return nil, nil
	}

	token, err := repo.Get(ctx, KeySessionToken)
	if err != nil {
		return nil, err
	}
	if token == nil {
		fresh, err := auth.GenerateToken(user, s.opts.SecretKey, s.opts.SessionValidity, s.now())
		if err != nil {
			return nil, fmt.Errorf("issue session token: %w", err)
		}
		return &Session{User: user, Token: fresh}, nil
	}

	verified, err := auth.ParseToken(string(token), s.opts.SecretKey, s.now())
	if err != nil {
		s.log.Debug(ctx, "session token rejected", "error", err)
		return nil, nil
	}
	if verified.UID != user.UID {
		s.log.Warn(ctx, "session token issued for another user", "uid", user.UID)
		return nil, nil
	}

	return &Session{User: user, Token: string(token)}, nil
}

// CurrentUser is CurrentSession without the token.
func (s *Store) CurrentUser(ctx context.Context) (*models.AuthUser, error) {
	session, err := s.CurrentSession(ctx)
	if err != nil || session == nil {
		return nil, err
	}
	return &session.User, nil
}

// VerifySession checks a session held by the front end.
func (s *Store) VerifySession(session Session) (*models.AuthUser, error) {
	return auth.ParseToken(session.Token, s.opts.SecretKey, s.now())
}

// SignUpRequest carries the sign-up form.
type SignUpRequest struct {
	Name     string      `validate:"required"`
	Email    string      `validate:"email" msg:"Please enter a valid email address"`
	Password string      `validate:"min=6" msg:"Password must be at least 6 characters long"`
	Phone    string      `validate:"len=10,number" msg:"Please enter a valid 10-digit phone number"`
	Role     models.Role `validate:"oneof=owner tenant" msg:"Please select a valid role"`
}

// SignUpResult reports the outcome of SignUp. Reason is nil on success and
// otherwise matches common.ErrorValidation, common.ErrEmailTaken or
// common.ErrPhoneTaken.
type SignUpResult struct {
	Success bool
	Message string
	Session *Session
	Reason  error
}

// SignUp creates a new identity and logs it in. The error return is reserved
// for storage failures; rejected input is reported in the result.
func (s *Store) SignUp(ctx context.Context, req SignUpRequest) (SignUpResult, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Phone == "" {
		return SignUpResult{Message: "Please fill all fields", Reason: common.ErrorValidation}, nil
	}
	if err := validation.Struct(req); err != nil {
		return SignUpResult{Message: err.Error(), Reason: err}, nil
	}

	var result SignUpResult
	err := s.withTx(ctx, func(ctx context.Context, repo kv.Repository) error {
		users, _, err := loadTable[models.User](ctx, s, repo, KeyUsers)
		if err != nil {
			return err
		}

		for _, u := range users {
			switch {
			case u.Email == req.Email:
				result = SignUpResult{Message: "An account with this email already exists", Reason: common.ErrEmailTaken}
				return nil
			case u.Phone == req.Phone:
				result = SignUpResult{Message: "An account with this phone number already exists", Reason: common.ErrPhoneTaken}
				return nil
			}
		}

		password, err := s.encodePassword(req.Password)
		if err != nil {
			return err
		}
		user := models.User{
			UID:      s.newUID(),
			Name:     req.Name,
			Email:    req.Email,
			Password: password,
			Role:     req.Role,
			Phone:    req.Phone,
		}
		if err := saveTable(ctx, repo, KeyUsers, append(users, user)); err != nil {
			return err
		}

		session, err := s.startSession(ctx, repo, user.Public())
		if err != nil {
			return err
		}
		result = SignUpResult{Success: true, Message: "Account created successfully!", Session: session}
		return nil
	})
	if err != nil {
		return SignUpResult{}, err
	}

	if result.Success {
		s.log.Info(ctx, "user signed up", "uid", result.Session.User.UID, "role", req.Role)
	}
	return result, nil
}

// findUser returns the user with uid from users.
func findUser(users []models.User, uid string) (models.User, error) {
	for _, u := range users {
		if u.UID == uid {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %s: %w", uid, common.ErrorNotFound)
}
