// Package common defines shared sentinel errors and small helpers used across
// RentDesk layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorValidation       = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Identity errors.
	ErrEmailTaken = errors.New("email already registered")
	ErrPhoneTaken = errors.New("phone number already registered")

	// Registration and ledger state conflicts.
	ErrAlreadyRegistered = errors.New("tenant already registered")
	ErrRoomOccupied      = errors.New("room already occupied")
	ErrAlreadyPaid       = errors.New("payment for this month has already been submitted")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Attachment errors.
	ErrFileTooLarge = errors.New("file too large")
)
