package directory

import (
	"context"

	"github.com/dmitrijs2005/rentdesk/internal/models"
	"github.com/dmitrijs2005/rentdesk/internal/timex"
	"github.com/dmitrijs2005/rentdesk/internal/validation"
)

// GetAllPayments returns the payment ledger.
func (s *Store) GetAllPayments(ctx context.Context) ([]models.Payment, error) {
	payments, _, err := loadTable[models.Payment](ctx, s, s.repo(), KeyPayments)
	return payments, err
}

// GetTenantPayments returns the ledger rows of tenantID in stored order.
func (s *Store) GetTenantPayments(ctx context.Context, tenantID string) ([]models.Payment, error) {
	payments, err := s.GetAllPayments(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Payment, 0)
	for _, p := range payments {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

// AddPayment stores p, replacing any row for the same tenant and month. The
// new row goes to the end of the ledger.
func (s *Store) AddPayment(ctx context.Context, p models.Payment) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	if err := validation.Struct(p); err != nil {
		return err
	}

	repo := s.repo()
	payments, _, err := loadTable[models.Payment](ctx, s, repo, KeyPayments)
	if err != nil {
		return err
	}

	kept := payments[:0]
	replaced := false
	for _, old := range payments {
		if old.TenantID == p.TenantID && old.Month == p.Month {
			replaced = true
			continue
		}
		kept = append(kept, old)
	}

	if err := saveTable(ctx, repo, KeyPayments, append(kept, p)); err != nil {
		return err
	}
	s.log.Info(ctx, "payment recorded",
		"tenant_id", p.TenantID, "month", p.Month, "status", p.Status, "replaced", replaced)
	return nil
}

// CurrentMonth is the ledger month of the store clock.
func (s *Store) CurrentMonth() string {
	return timex.Month(s.now())
}

// statusFor returns the status of the first row matching month, or pending.
func statusFor(payments []models.Payment, month string, match func(models.Payment) bool) models.PaymentStatus {
	for _, p := range payments {
		if p.Month == month && match(p) {
			return p.Status
		}
	}
	return models.PaymentPending
}

// CurrentMonthStatus is the tenant's payment status for the current month.
func (s *Store) CurrentMonthStatus(ctx context.Context, tenantID string) (models.PaymentStatus, error) {
	payments, err := s.GetAllPayments(ctx)
	if err != nil {
		return "", err
	}
	return statusFor(payments, s.CurrentMonth(), func(p models.Payment) bool {
		return p.TenantID == tenantID
	}), nil
}
