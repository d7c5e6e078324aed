package directory

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/rentdesk/internal/kv"
	"github.com/dmitrijs2005/rentdesk/internal/logging"
	"github.com/dmitrijs2005/rentdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

var march15 = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

// newTestStore returns a seeded store over an in-memory database with a
// controllable clock.
func newTestStore(t *testing.T, opts Options) (*Store, *testClock) {
	t.Helper()

	db, err := kv.Open(context.Background(), "sqlite", ":memory:", logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if opts.SecretKey == nil {
		opts.SecretKey = []byte("test-secret")
	}
	s := New(db, logging.Nop(), opts)

	clock := &testClock{t: march15}
	s.now = clock.Now

	require.NoError(t, s.Seed(context.Background()))
	return s, clock
}

func rawGet(t *testing.T, s *Store, key string) []byte {
	t.Helper()
	v, err := s.repo().Get(context.Background(), key)
	require.NoError(t, err)
	return v
}

func rawSet(t *testing.T, s *Store, key, value string) {
	t.Helper()
	require.NoError(t, s.repo().Set(context.Background(), key, []byte(value)))
}

func registration(tenantID, name, room string) models.TenantRegistration {
	return models.TenantRegistration{
		TenantID:           tenantID,
		TenantName:         name,
		AadharNumber:       "123412341234",
		Company:            "Acme",
		FamilyMembersCount: 2,
		RoomNumber:         room,
		Phone:              "9876543211",
	}
}

// ---- tables ----

func TestNew_Defaults(t *testing.T) {
	db, err := kv.Open(context.Background(), "sqlite", ":memory:", logging.Nop())
	require.NoError(t, err)
	defer db.Close()

	s := New(db, nil, Options{})
	assert.Len(t, s.opts.SecretKey, 32)
	assert.Equal(t, DefaultResetCodeValidity, s.opts.ResetCodeValidity)
	assert.NotNil(t, s.log)
}

func TestLoadTable_AbsentKey(t *testing.T) {
	s, _ := newTestStore(t, Options{})
	ctx := context.Background()

	rows, present, err := loadTable[models.Payment](ctx, s, s.repo(), KeyPayments)
	require.NoError(t, err)
	assert.False(t, present)
	assert.Empty(t, rows)
	assert.Nil(t, rawGet(t, s, KeyPayments+quarantineSuffix))
}

func TestLoadTable_QuarantinesBadRows(t *testing.T) {
	s, _ := newTestStore(t, Options{})
	ctx := context.Background()

	rawSet(t, s, KeyUsers, `[
		{"uid":"1","name":"Owner Admin","email":"owner@building.com","password":"owner123","role":"owner"},
		{"uid":"9","name":"Root","email":"root@building.com","password":"x","role":"admin"},
		{"uid":42},
		{"uid":"2","name":"Tenant One","email":"tenant1@building.com","password":"tenant123","role":"tenant"}
	]`)

	users, err := s.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "1", users[0].UID)
	assert.Equal(t, "2", users[1].UID)

	q, err := s.Quarantined(ctx, KeyUsers)
	require.NoError(t, err)
	require.Len(t, q, 2)
	assert.Contains(t, q[0].Raw, `"admin"`)
	assert.True(t, q[0].QuarantinedAt.Equal(march15))

	// The table is rewritten, so a second read quarantines nothing new.
	_, err = s.GetAllUsers(ctx)
	require.NoError(t, err)
	q, err = s.Quarantined(ctx, KeyUsers)
	require.NoError(t, err)
	assert.Len(t, q, 2)
}

func TestLoadTable_UnparseableTable(t *testing.T) {
	s, _ := newTestStore(t, Options{})
	ctx := context.Background()

	rawSet(t, s, KeyPayments, `{not json`)

	payments, err := s.GetAllPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)
	assert.JSONEq(t, `[]`, string(rawGet(t, s, KeyPayments)))

	q, err := s.Quarantined(ctx, KeyPayments)
	require.NoError(t, err)
	require.Len(t, q, 1)
	assert.Equal(t, `{not json`, q[0].Raw)
}

func TestLoadTable_RoomInvariant(t *testing.T) {
	s, _ := newTestStore(t, Options{})
	ctx := context.Background()

	rawSet(t, s, KeyRooms, `[
		{"roomNumber":"101","floor":1,"roomType":"single","status":"occupied","tenantId":null},
		{"roomNumber":"102","floor":1,"roomType":"single","status":"vacant","tenantId":"2"},
		{"roomNumber":"103","floor":1,"roomType":"double","status":"occupied","tenantId":"3"},
		{"roomNumber":"104","floor":1,"roomType":"double","status":"vacant","tenantId":null}
	]`)

	rooms, err := s.GetAllRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "103", rooms[0].RoomNumber)
	assert.Equal(t, "104", rooms[1].RoomNumber)
}

func TestQuarantine_DamagedQuarantineReplaced(t *testing.T) {
	s, _ := newTestStore(t, Options{})
	ctx := context.Background()

	rawSet(t, s, KeyResets+quarantineSuffix, `garbage`)
	rawSet(t, s, KeyResets, `[{"userId":"1","code":"12","expiresAt":"2025-03-15T11:00:00Z"}]`)

	check, err := s.ValidateResetCode(ctx, "12")
	require.NoError(t, err)
	assert.False(t, check.Valid)

	q, err := s.Quarantined(ctx, KeyResets)
	require.NoError(t, err)
	assert.Len(t, q, 1)
}
