// Package models defines the records kept by the directory store. Struct
// tags carry both the JSON layout of the stored tables and the validation
// rules applied when a table is read back.
package models

type Role string

const (
	RoleOwner  Role = "owner"
	RoleTenant Role = "tenant"
)

// User is a row of the identity table.
type User struct {
	UID      string `json:"uid" validate:"required"`
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password"`
	Role     Role   `json:"role" validate:"oneof=owner tenant"`
	Phone    string `json:"phone,omitempty"`
}

// AuthUser is the public projection of a User.
type AuthUser struct {
	UID   string `json:"uid" validate:"required"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role" validate:"oneof=owner tenant"`
	Phone string `json:"phone,omitempty"`
}

// Public strips the credentials from u.
func (u User) Public() AuthUser {
	return AuthUser{
		UID:   u.UID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		Phone: u.Phone,
	}
}
