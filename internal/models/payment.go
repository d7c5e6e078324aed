package models

import "time"

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
)

type PaymentType string

const (
	PaymentRent    PaymentType = "rent"
	PaymentDeposit PaymentType = "deposit"
)

// Payment is a row of the payment ledger. (TenantID, Month) is unique.
type Payment struct {
	TenantID      string        `json:"tenantId" validate:"required"`
	RoomNumber    string        `json:"roomNumber"`
	Month         string        `json:"month" validate:"datetime=2006-01"`
	Amount        int64         `json:"amount" validate:"gte=0"`
	ScreenshotURL string        `json:"screenshotUrl"`
	Status        PaymentStatus `json:"status" validate:"oneof=paid pending"`
	CreatedAt     time.Time     `json:"createdAt"`
	Type          PaymentType   `json:"type" validate:"oneof=rent deposit"`
}
