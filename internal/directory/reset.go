package directory

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/rentdesk/internal/kv"
	"github.com/dmitrijs2005/rentdesk/internal/models"
)

const msgInvalidCode = "Invalid or expired reset code"

// ResetRequest is the outcome of InitiatePasswordReset. ResetCode is
// returned to the caller because codes are not delivered out of band.
type ResetRequest struct {
	Success   bool
	Message   string
	ResetCode string
}

// CodeCheck is the outcome of ValidateResetCode.
type CodeCheck struct {
	Valid   bool
	UserID  string
	Message string
}

// ResetResult is the outcome of ResetPassword.
type ResetResult struct {
	Success bool
	Message string
}

// InitiatePasswordReset issues a reset code for the user with the exact
// phone number. Earlier codes for the same user stay valid.
func (s *Store) InitiatePasswordReset(ctx context.Context, phone string) (ResetRequest, error) {
	repo := s.repo()

	users, _, err := loadTable[models.User](ctx, s, repo, KeyUsers)
	if err != nil {
		return ResetRequest{}, err
	}

	var user *models.User
	for i := range users {
		if users[i].Phone != "" && users[i].Phone == phone {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return ResetRequest{Message: "Phone number not found"}, nil
	}

	code, err := s.newCode()
	if err != nil {
		return ResetRequest{}, fmt.Errorf("generate reset code: %w", err)
	}

	tokens, _, err := loadTable[models.ResetToken](ctx, s, repo, KeyResets)
	if err != nil {
		return ResetRequest{}, err
	}
	tokens = append(tokens, models.ResetToken{
		UserID:    user.UID,
		Code:      code,
		ExpiresAt: s.now().Add(s.opts.ResetCodeValidity),
	})
	if err := saveTable(ctx, repo, KeyResets, tokens); err != nil {
		return ResetRequest{}, err
	}

	s.log.Info(ctx, "password reset initiated", "uid", user.UID)
	return ResetRequest{
		Success:   true,
		Message:   fmt.Sprintf("Reset code sent to %s. For demo, code is: %s", phone, code),
		ResetCode: code,
	}, nil
}

// ValidateResetCode finds an unexpired token carrying code. Codes are not
// bound to the user who requested them.
func (s *Store) ValidateResetCode(ctx context.Context, code string) (CodeCheck, error) {
	return s.validateCode(ctx, s.repo(), code)
}

func (s *Store) validateCode(ctx context.Context, repo kv.Repository, code string) (CodeCheck, error) {
	tokens, _, err := loadTable[models.ResetToken](ctx, s, repo, KeyResets)
	if err != nil {
		return CodeCheck{}, err
	}

	now := s.now()
	for _, t := range tokens {
		if t.Code == code && t.Live(now) {
			return CodeCheck{Valid: true, UserID: t.UserID}, nil
		}
	}
	return CodeCheck{Message: msgInvalidCode}, nil
}

// ResetPassword sets a new password for the user behind a valid code and
// deletes every token carrying that code. Both writes share a transaction.
func (s *Store) ResetPassword(ctx context.Context, code, newPassword string) (ResetResult, error) {
	var (
		result ResetResult
		uid    string
	)

	err := s.withTx(ctx, func(ctx context.Context, repo kv.Repository) error {
		check, err := s.validateCode(ctx, repo, code)
		if err != nil {
			return err
		}
		if !check.Valid {
			result = ResetResult{Message: msgInvalidCode}
			return nil
		}

		users, _, err := loadTable[models.User](ctx, s, repo, KeyUsers)
		if err != nil {
			return err
		}
		user, err := findUser(users, check.UserID)
		if err != nil {
			result = ResetResult{Message: "User not found"}
			return nil
		}

		password, err := s.encodePassword(newPassword)
		if err != nil {
			return err
		}
		for i := range users {
			if users[i].UID == user.UID {
				users[i].Password = password
			}
		}
		if err := saveTable(ctx, repo, KeyUsers, users); err != nil {
			return err
		}

		tokens, _, err := loadTable[models.ResetToken](ctx, s, repo, KeyResets)
		if err != nil {
			return err
		}
		kept := tokens[:0]
		for _, t := range tokens {
			if t.Code != code {
				kept = append(kept, t)
			}
		}
		if err := saveTable(ctx, repo, KeyResets, kept); err != nil {
			return err
		}

		uid = user.UID
		result = ResetResult{Success: true, Message: "Password reset successful"}
		return nil
	})
	if err != nil {
		return ResetResult{}, err
	}

	if result.Success {
		s.log.Info(ctx, "password reset", "uid", uid)
	}
	return result, nil
}
