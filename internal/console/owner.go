package console

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/rentdesk/internal/common"
	"github.com/dmitrijs2005/rentdesk/internal/directory"
	"github.com/dmitrijs2005/rentdesk/internal/models"
)

// Summary prints the owner dashboard for the current month.
func (a *App) Summary(ctx context.Context) error {
	if !a.requireRole(ctx, models.RoleOwner) {
		return nil
	}

	sum, err := a.store.OwnerSummary(ctx)
	if err != nil {
		return err
	}

	occ, rev := sum.Occupancy, sum.Revenue
	a.printf("Building overview for %s\n", sum.Month)
	a.printf("Rooms: %d total, %d occupied, %d vacant (%.0f%% occupancy)\n", occ.Total, occ.Occupied, occ.Vacant, occ.Rate)
	a.printf("Revenue: Rs %d collected of Rs %d expected (Rs %d outstanding)\n", rev.Collected, rev.Expected, rev.Outstanding)
	a.printf("Payments: %d paid, %d pending\n", rev.PaidCount, rev.PendingCount)
	return nil
}

// Rooms lists rooms, optionally for one floor. Owners see every room with
// its tenant and payment status; others see the vacant rooms.
func (a *App) Rooms(ctx context.Context, args []string) error {
	if !a.requireRole(ctx, "") {
		return nil
	}

	floor := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > directory.Floors {
			a.printf("Floor must be a number between 1 and %d\n", directory.Floors)
			return nil
		}
		floor = n
	}

	if a.role() != models.RoleOwner {
		return a.vacantRooms(ctx, floor)
	}

	sum, err := a.store.OwnerSummary(ctx)
	if err != nil {
		return err
	}
	for _, f := range sum.Floors {
		if floor != 0 && f.Floor != floor {
			continue
		}
		a.printf("Floor %d\n", f.Floor)
		for _, row := range f.Rooms {
			if !row.Room.Occupied() {
				a.printf("  %s  %-6s  vacant\n", row.Room.RoomNumber, row.Room.RoomType)
				continue
			}
			tenant := "(unknown tenant)"
			if row.Tenant != nil {
				tenant = row.Tenant.Name
			}
			a.printf("  %s  %-6s  %s  %s\n", row.Room.RoomNumber, row.Room.RoomType, tenant, row.PaymentStatus)
		}
	}
	return nil
}

func (a *App) vacantRooms(ctx context.Context, floor int) error {
	var rooms []models.Room
	var err error
	if floor == 0 {
		rooms, err = a.store.GetAvailableRooms(ctx)
	} else {
		rooms, err = a.store.GetRoomsOnFloor(ctx, floor)
	}
	if err != nil {
		return err
	}

	shown := 0
	for _, r := range rooms {
		if r.Occupied() {
			continue
		}
		a.printf("Room %s - Floor %d (%s)\n", r.RoomNumber, r.Floor, roomTypeLabel(r.RoomType))
		shown++
	}
	if shown == 0 {
		a.println("No rooms available at the moment")
	}
	return nil
}

// Payments prints the payment ledger: all of it for owners, the tenant's
// own records otherwise.
func (a *App) Payments(ctx context.Context) error {
	if !a.requireRole(ctx, "") {
		return nil
	}

	if a.role() != models.RoleOwner {
		ov, err := a.store.TenantOverview(ctx, a.session.User.UID)
		if errors.Is(err, common.ErrorNotFound) {
			a.println("Registration not found. Please complete your registration first.")
			return nil
		}
		if err != nil {
			return err
		}
		a.printPayments(ctx, ov.Payments, false)
		return nil
	}

	payments, err := a.store.GetAllPayments(ctx)
	if err != nil {
		return err
	}
	a.printPayments(ctx, payments, true)
	return nil
}

func (a *App) printPayments(ctx context.Context, payments []models.Payment, withLinks bool) {
	if len(payments) == 0 {
		a.println("No payment history yet")
		return
	}

	a.println("Payment history:")
	for _, p := range payments {
		a.printf("  %s  room %s  Rs %d  %s  %s\n", p.Month, p.RoomNumber, p.Amount, p.Type, p.Status)
		if withLinks && p.ScreenshotURL != "" {
			link, err := a.files.Link(ctx, p.ScreenshotURL)
			if err != nil {
				a.log.Warn(ctx, "cannot link attachment", "tenant_id", p.TenantID, "month", p.Month, "error", err)
				continue
			}
			a.println("    proof: " + link)
		}
	}
}
