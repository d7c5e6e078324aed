package models

import "time"

// ResetToken binds a one-time code to a pending password change.
type ResetToken struct {
	UserID    string    `json:"userId" validate:"required"`
	Code      string    `json:"code" validate:"len=6,number"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Live reports whether the token is still usable at now.
func (t ResetToken) Live(now time.Time) bool {
	return t.ExpiresAt.After(now)
}
