package models

import "time"

// TenantRegistration links a tenant identity to a room.
type TenantRegistration struct {
	TenantID           string    `json:"tenantId" validate:"required"`
	TenantName         string    `json:"tenantName"`
	AadharNumber       string    `json:"aadharNumber" validate:"len=12,number"`
	AadharCardURL      string    `json:"aadharCardUrl,omitempty"`
	Company            string    `json:"company" validate:"required"`
	FamilyMembersCount int       `json:"familyMembersCount" validate:"gte=1"`
	RoomNumber         string    `json:"roomNumber" validate:"required"`
	RoomType           RoomType  `json:"roomType" validate:"oneof=single double"`
	JoinedAt           time.Time `json:"joinedAt"`
	Phone              string    `json:"phone,omitempty"`
}
