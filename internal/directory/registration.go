package directory

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/rentdesk/internal/common"
	"github.com/dmitrijs2005/rentdesk/internal/kv"
	"github.com/dmitrijs2005/rentdesk/internal/models"
	"github.com/dmitrijs2005/rentdesk/internal/validation"
)

// IsTenantRegistered reports whether userID has a registration.
func (s *Store) IsTenantRegistered(ctx context.Context, userID string) (bool, error) {
	reg, err := s.GetTenantRegistration(ctx, userID)
	if err != nil {
		return false, err
	}
	return reg != nil, nil
}

// GetTenantRegistration returns the registration of tenantID, or nil.
func (s *Store) GetTenantRegistration(ctx context.Context, tenantID string) (*models.TenantRegistration, error) {
	regs, _, err := loadTable[models.TenantRegistration](ctx, s, s.repo(), KeyRegistrations)
	if err != nil {
		return nil, err
	}
	for _, r := range regs {
		if r.TenantID == tenantID {
			return &r, nil
		}
	}
	return nil, nil
}

// RegisterTenant records reg and marks its room occupied by the tenant, both
// in one transaction. The room type is taken from the room table and a zero
// JoinedAt is set to now.
//
// It fails without writing anything with common.ErrAlreadyRegistered when the
// tenant already has a registration, common.ErrorNotFound when the room does
// not exist, common.ErrRoomOccupied when the room is taken, and a
// *validation.Error when reg breaks the record rules.
func (s *Store) RegisterTenant(ctx context.Context, reg models.TenantRegistration) error {
	err := s.withTx(ctx, func(ctx context.Context, repo kv.Repository) error {
		regs, _, err := loadTable[models.TenantRegistration](ctx, s, repo, KeyRegistrations)
		if err != nil {
			return err
		}
		for _, r := range regs {
			if r.TenantID == reg.TenantID {
				return common.ErrAlreadyRegistered
			}
		}

		rooms, _, err := loadTable[models.Room](ctx, s, repo, KeyRooms)
		if err != nil {
			return err
		}
		idx := -1
		for i, r := range rooms {
			if r.RoomNumber == reg.RoomNumber {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("room %s: %w", reg.RoomNumber, common.ErrorNotFound)
		}
		if rooms[idx].Occupied() {
			return fmt.Errorf("room %s: %w", reg.RoomNumber, common.ErrRoomOccupied)
		}

		reg.RoomType = rooms[idx].RoomType
		if reg.JoinedAt.IsZero() {
			reg.JoinedAt = s.now()
		}
		if err := validation.Struct(reg); err != nil {
			return err
		}

		tenantID := reg.TenantID
		rooms[idx].Status = models.RoomOccupied
		rooms[idx].TenantID = &tenantID

		if err := saveTable(ctx, repo, KeyRegistrations, append(regs, reg)); err != nil {
			return err
		}
		return saveTable(ctx, repo, KeyRooms, rooms)
	})
	if err != nil {
		return err
	}

	s.log.Info(ctx, "tenant registered", "tenant_id", reg.TenantID, "room", reg.RoomNumber)
	return nil
}
