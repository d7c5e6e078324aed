package directory

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/rentdesk/internal/common"
	"github.com/dmitrijs2005/rentdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payment(tenantID, month string, status models.PaymentStatus, url string) models.Payment {
	return models.Payment{
		TenantID:      tenantID,
		RoomNumber:    "101",
		Month:         month,
		Amount:        8000,
		ScreenshotURL: url,
		Status:        status,
		Type:          models.PaymentRent,
	}
}

func TestAddPayment_UpsertByTenantAndMonth(t *testing.T) {
	s, _ := newTestStore(t, Options{})
	ctx := context.Background()

	require.NoError(t, s.AddPayment(ctx, payment("2", "2025-03", models.PaymentPending, "a.png")))
	require.NoError(t, s.AddPayment(ctx, payment("2", "2025-02", models.PaymentPaid, "feb.png")))
	require.NoError(t, s.AddPayment(ctx, payment("3", "2025-03", models.PaymentPaid, "other.png")))
	require.NoError(t, s.AddPayment(ctx, payment("2", "2025-03", models.PaymentPaid, "b.png")))

	all, err := s.GetAllPayments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "b.png", all[2].ScreenshotURL, "replacement goes to the end")

	mine, err := s.GetTenantPayments(ctx, "2")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "2025-02", mine[0].Month)
	assert.Equal(t, "2025-03", mine[1].Month)
	assert.Equal(t, models.PaymentPaid, mine[1].Status)
	assert.True(t, mine[1].CreatedAt.Equal(march15))

	none, err := s.GetTenantPayments(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAddPayment_Invalid(t *testing.T) {
	s, _ := newTestStore(t, Options{})
	ctx := context.Background()

	bad := payment("2", "March 2025", models.PaymentPaid, "x.png")
	require.ErrorIs(t, s.AddPayment(ctx, bad), common.ErrorValidation)

	bad = payment("2", "2025-03", "refunded", "x.png")
	require.ErrorIs(t, s.AddPayment(ctx, bad), common.ErrorValidation)

	assert.Nil(t, rawGet(t, s, KeyPayments))
}

func TestCurrentMonthStatus(t *testing.T) {
	s, clock := newTestStore(t, Options{})
	ctx := context.Background()

	status, err := s.CurrentMonthStatus(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, status)

	require.NoError(t, s.AddPayment(ctx, payment("2", "2025-03", models.PaymentPaid, "x.png")))
	status, err = s.CurrentMonthStatus(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, status)

	clock.Advance(20 * 24 * time.Hour)
	assert.Equal(t, "2025-04", s.CurrentMonth())
	status, err = s.CurrentMonthStatus(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, status)
}
