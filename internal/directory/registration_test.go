package directory

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/rentdesk/internal/common"
	"github.com/dmitrijs2005/rentdesk/internal/models"
	"github.com/dmitrijs2005/rentdesk/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTenant_OccupiesRoom(t *testing.T) {
	s, _ := newTestStore(t, Options{})
	ctx := context.Background()

	ok, err := s.IsTenantRegistered(ctx, "2")
	require.NoError(t, err)
	assert.False(t, ok)

	reg := registration("2", "Tenant One", "203")
	reg.RoomType = models.RoomSingle
	require.NoError(t, s.RegisterTenant(ctx, reg))

	ok, err = s.IsTenantRegistered(ctx, "2")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.GetTenantRegistration(ctx, "2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.RoomDouble, got.RoomType, "room type comes from the room table")
	assert.True(t, got.JoinedAt.Equal(march15))

	rooms, err := s.GetAllRooms(ctx)
	require.NoError(t, err)
	for _, r := range rooms {
		if r.RoomNumber == "203" {
			assert.Equal(t, models.RoomOccupied, r.Status)
			require.NotNil(t, r.TenantID)
			assert.Equal(t, "2", *r.TenantID)
		} else {
			assert.Equal(t, models.RoomVacant, r.Status)
		}
	}
}

func TestGetTenantRegistration_Absent(t *testing.T) {
	s, _ := newTestStore(t, Options{})

	got, err := s.GetTenantRegistration(context.Background(), "3")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRegisterTenant_Rejections(t *testing.T) {
	s, _ := newTestStore(t, Options{})
	ctx := context.Background()

	require.NoError(t, s.RegisterTenant(ctx, registration("2", "Tenant One", "101")))
	regsBefore := string(rawGet(t, s, KeyRegistrations))
	roomsBefore := string(rawGet(t, s, KeyRooms))

	err := s.RegisterTenant(ctx, registration("2", "Tenant One", "102"))
	require.ErrorIs(t, err, common.ErrAlreadyRegistered)

	err = s.RegisterTenant(ctx, registration("3", "Tenant Two", "101"))
	require.ErrorIs(t, err, common.ErrRoomOccupied)

	err = s.RegisterTenant(ctx, registration("3", "Tenant Two", "999"))
	require.ErrorIs(t, err, common.ErrorNotFound)

	bad := registration("3", "Tenant Two", "102")
	bad.AadharNumber = "12345"
	err = s.RegisterTenant(ctx, bad)
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "AadharNumber", verr.Field)

	for _, aadhar := range []string{"1234567890.5", "+12345678901", "-12345678901"} {
		bad = registration("3", "Tenant Two", "102")
		bad.AadharNumber = aadhar
		require.ErrorIs(t, s.RegisterTenant(ctx, bad), common.ErrorValidation, aadhar)
	}

	bad = registration("3", "Tenant Two", "102")
	bad.FamilyMembersCount = 0
	require.ErrorIs(t, s.RegisterTenant(ctx, bad), common.ErrorValidation)

	assert.Equal(t, regsBefore, string(rawGet(t, s, KeyRegistrations)))
	assert.Equal(t, roomsBefore, string(rawGet(t, s, KeyRooms)))
}
