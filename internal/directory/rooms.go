package directory

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/rentdesk/internal/models"
)

// Building layout of the seed catalogue.
const (
	Floors        = 5
	RoomsPerFloor = 4
)

// seedRooms builds rooms 101-104 through 501-504. The first two rooms on a
// floor are single, the other two double.
func seedRooms() []models.Room {
	rooms := make([]models.Room, 0, Floors*RoomsPerFloor)
	for floor := 1; floor <= Floors; floor++ {
		for n := 1; n <= RoomsPerFloor; n++ {
			roomType := models.RoomDouble
			if n <= 2 {
				roomType = models.RoomSingle
			}
			rooms = append(rooms, models.Room{
				RoomNumber: fmt.Sprintf("%d%02d", floor, n),
				Floor:      floor,
				RoomType:   roomType,
				Status:     models.RoomVacant,
			})
		}
	}
	return rooms
}

// InitializeRooms writes the room catalogue when the room table does not
// exist. A present table is never reseeded, even when it is damaged.
func (s *Store) InitializeRooms(ctx context.Context) error {
	repo := s.repo()

	raw, err := repo.Get(ctx, KeyRooms)
	if err != nil {
		return err
	}
	if raw != nil {
		return nil
	}

	rooms := seedRooms()
	if err := saveTable(ctx, repo, KeyRooms, rooms); err != nil {
		return err
	}
	s.log.Info(ctx, "room table seeded", "count", len(rooms))
	return nil
}

// Seed initialises the identity and room tables.
func (s *Store) Seed(ctx context.Context) error {
	if err := s.InitializeUsers(ctx); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := s.InitializeRooms(ctx); err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}
	return nil
}

// GetAllRooms returns the room table in stored order.
func (s *Store) GetAllRooms(ctx context.Context) ([]models.Room, error) {
	rooms, _, err := loadTable[models.Room](ctx, s, s.repo(), KeyRooms)
	return rooms, err
}

// GetAvailableRooms returns the vacant rooms in stored order.
func (s *Store) GetAvailableRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.GetAllRooms(ctx)
	if err != nil {
		return nil, err
	}

	vacant := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if !r.Occupied() {
			vacant = append(vacant, r)
		}
	}
	return vacant, nil
}

// GetRoomsOnFloor returns the rooms of one floor in stored order.
func (s *Store) GetRoomsOnFloor(ctx context.Context, floor int) ([]models.Room, error) {
	rooms, err := s.GetAllRooms(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Room, 0, RoomsPerFloor)
	for _, r := range rooms {
		if r.Floor == floor {
			out = append(out, r)
		}
	}
	return out, nil
}
