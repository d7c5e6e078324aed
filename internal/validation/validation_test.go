package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/rentdesk/internal/common"
	"github.com/dmitrijs2005/rentdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type phoneForm struct {
	Phone string `validate:"len=10,number" msg:"Please enter a valid 10-digit phone number"`
	Note  string `validate:"required"`
}

func TestStruct_UsesMsgTag(t *testing.T) {
	err := Struct(phoneForm{Phone: "98765", Note: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorValidation))

	var ve *Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Phone", ve.Field)
	assert.Equal(t, "len", ve.Rule)
	assert.Equal(t, "Please enter a valid 10-digit phone number", ve.Message)
}

func TestStruct_FallbackMessage(t *testing.T) {
	err := Struct(&phoneForm{Phone: "9876543210"})
	require.Error(t, err)
	assert.Equal(t, "Note failed required", err.Error())
}

func TestStruct_Valid(t *testing.T) {
	require.NoError(t, Struct(phoneForm{Phone: "9876543210", Note: "ok"}))
}

func TestStruct_NonStruct(t *testing.T) {
	err := Struct(42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func strPtr(s string) *string { return &s }

func TestRoomOccupancyInvariant(t *testing.T) {
	tests := []struct {
		name    string
		room    models.Room
		wantErr bool
	}{
		{"vacant without tenant", models.Room{RoomNumber: "101", Floor: 1, RoomType: models.RoomSingle, Status: models.RoomVacant}, false},
		{"occupied with tenant", models.Room{RoomNumber: "203", Floor: 2, RoomType: models.RoomDouble, Status: models.RoomOccupied, TenantID: strPtr("2")}, false},
		{"occupied without tenant", models.Room{RoomNumber: "203", Floor: 2, RoomType: models.RoomDouble, Status: models.RoomOccupied}, true},
		{"vacant with tenant", models.Room{RoomNumber: "101", Floor: 1, RoomType: models.RoomSingle, Status: models.RoomVacant, TenantID: strPtr("2")}, true},
		{"unknown type", models.Room{RoomNumber: "101", Floor: 1, RoomType: "suite", Status: models.RoomVacant}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.room)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPaymentAndTokenRules(t *testing.T) {
	p := models.Payment{
		TenantID: "2", RoomNumber: "203", Month: "2024-06", Amount: 12000,
		Status: models.PaymentPaid, Type: models.PaymentRent, CreatedAt: time.Now(),
	}
	require.NoError(t, Struct(p))

	p.Month = "June 2024"
	require.Error(t, Struct(p))

	tok := models.ResetToken{UserID: "2", Code: "123456", ExpiresAt: time.Now()}
	require.NoError(t, Struct(tok))

	tok.Code = "12a456"
	require.Error(t, Struct(tok))
}

func TestDigitOnlyRules(t *testing.T) {
	reg := models.TenantRegistration{
		TenantID: "2", AadharNumber: "123456789012", Company: "Acme",
		FamilyMembersCount: 1, RoomNumber: "101", RoomType: models.RoomSingle,
	}
	require.NoError(t, Struct(reg))

	token := models.ResetToken{UserID: "2", Code: "123456", ExpiresAt: time.Now()}
	require.NoError(t, Struct(token))

	for _, code := range []string{"+12345", "-12345", "1234.5", "12 345"} {
		token.Code = code
		assert.Error(t, Struct(token), code)
	}
	for _, aadhar := range []string{"1234567890.5", "+12345678901", "12345678901e"} {
		reg.AadharNumber = aadhar
		assert.Error(t, Struct(reg), aadhar)
	}
	for _, phone := range []string{"+123456789", "12345.6789", "-123456789"} {
		assert.Error(t, Struct(phoneForm{Phone: phone, Note: "x"}), phone)
	}
}
