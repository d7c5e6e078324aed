package directory

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/rentdesk/internal/common"
	"github.com/dmitrijs2005/rentdesk/internal/models"
)

// View names the screen a user lands on.
type View string

const (
	ViewAuth               View = "auth"
	ViewTenantRegistration View = "tenant-registration"
	ViewTenantDashboard    View = "tenant-dashboard"
	ViewOwnerDashboard     View = "owner-dashboard"
)

// Route picks the landing view for user; nil means not logged in.
func (s *Store) Route(ctx context.Context, user *models.AuthUser) (View, error) {
	if user == nil {
		return ViewAuth, nil
	}
	if user.Role == models.RoleOwner {
		return ViewOwnerDashboard, nil
	}

	registered, err := s.IsTenantRegistered(ctx, user.UID)
	if err != nil {
		return "", err
	}
	if !registered {
		return ViewTenantRegistration, nil
	}
	return ViewTenantDashboard, nil
}

// TenantOverview is what a registered tenant sees.
type TenantOverview struct {
	Registration       models.TenantRegistration
	Payments           []models.Payment
	Month              string
	CurrentMonthStatus models.PaymentStatus
	MonthlyRent        int64
}

// TenantOverview gathers the tenant's registration and payment history.
// It returns common.ErrorNotFound when the tenant is not registered.
func (s *Store) TenantOverview(ctx context.Context, tenantID string) (*TenantOverview, error) {
	reg, err := s.GetTenantRegistration(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, fmt.Errorf("registration for %s: %w", tenantID, common.ErrorNotFound)
	}

	payments, err := s.GetTenantPayments(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	month := s.CurrentMonth()
	return &TenantOverview{
		Registration:       *reg,
		Payments:           payments,
		Month:              month,
		CurrentMonthStatus: statusFor(payments, month, func(models.Payment) bool { return true }),
		MonthlyRent:        reg.RoomType.MonthlyRent(),
	}, nil
}

// SubmitRentProof records this month's rent as paid with the uploaded
// screenshot. It fails with common.ErrAlreadyPaid when the month is already
// paid and common.ErrorNotFound when the tenant is not registered.
func (s *Store) SubmitRentProof(ctx context.Context, tenantID, screenshotURL string) (*models.Payment, error) {
	overview, err := s.TenantOverview(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if overview.CurrentMonthStatus == models.PaymentPaid {
		return nil, common.ErrAlreadyPaid
	}

	p := models.Payment{
		TenantID:      tenantID,
		RoomNumber:    overview.Registration.RoomNumber,
		Month:         overview.Month,
		Amount:        overview.MonthlyRent,
		ScreenshotURL: screenshotURL,
		Status:        models.PaymentPaid,
		CreatedAt:     s.now(),
		Type:          models.PaymentRent,
	}
	if err := s.AddPayment(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Occupancy counts rooms by status. Rate is a percentage.
type Occupancy struct {
	Total    int
	Occupied int
	Vacant   int
	Rate     float64
}

// Revenue is the current month's rent position.
type Revenue struct {
	Collected    int64
	Expected     int64
	Outstanding  int64
	PaidCount    int
	PendingCount int
}

// RoomRow is a room with its occupant and this month's payment status.
type RoomRow struct {
	Room          models.Room
	Tenant        *models.AuthUser
	PaymentStatus models.PaymentStatus
}

// FloorRooms groups room rows by floor.
type FloorRooms struct {
	Floor int
	Rooms []RoomRow
}

// OwnerSummary is the owner's view of the building.
type OwnerSummary struct {
	Month     string
	Occupancy Occupancy
	Revenue   Revenue
	Floors    []FloorRooms
}

// OwnerSummary derives occupancy, revenue and per-room status for the
// current month. Nothing here is persisted.
func (s *Store) OwnerSummary(ctx context.Context) (*OwnerSummary, error) {
	rooms, err := s.GetAllRooms(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.GetAllPayments(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	month := s.CurrentMonth()
	sum := &OwnerSummary{Month: month}

	sum.Occupancy.Total = len(rooms)
	for _, r := range rooms {
		if r.Occupied() {
			sum.Occupancy.Occupied++
			sum.Revenue.Expected += r.RoomType.MonthlyRent()
		}
	}
	sum.Occupancy.Vacant = sum.Occupancy.Total - sum.Occupancy.Occupied
	if sum.Occupancy.Total > 0 {
		sum.Occupancy.Rate = float64(sum.Occupancy.Occupied) / float64(sum.Occupancy.Total) * 100
	}

	for _, p := range payments {
		if p.Month == month && p.Status == models.PaymentPaid {
			sum.Revenue.Collected += p.Amount
			sum.Revenue.PaidCount++
		}
	}
	sum.Revenue.PendingCount = max(sum.Occupancy.Occupied-sum.Revenue.PaidCount, 0)
	sum.Revenue.Outstanding = max(sum.Revenue.Expected-sum.Revenue.Collected, 0)

	byUID := make(map[string]models.AuthUser, len(users))
	for _, u := range users {
		byUID[u.UID] = u.Public()
	}

	floors := make(map[int][]RoomRow)
	for _, r := range rooms {
		row := RoomRow{Room: r, PaymentStatus: models.PaymentPending}
		if r.Occupied() {
			if u, ok := byUID[*r.TenantID]; ok {
				row.Tenant = &u
			}
			row.PaymentStatus = statusFor(payments, month, func(p models.Payment) bool {
				return p.RoomNumber == r.RoomNumber
			})
		}
		floors[r.Floor] = append(floors[r.Floor], row)
	}

	numbers := make([]int, 0, len(floors))
	for f := range floors {
		numbers = append(numbers, f)
	}
	sort.Ints(numbers)
	for _, f := range numbers {
		sum.Floors = append(sum.Floors, FloorRooms{Floor: f, Rooms: floors[f]})
	}

	return sum, nil
}
