package models

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
)

// Monthly rent per room type.
const (
	RentSingle int64 = 8000
	RentDouble int64 = 12000
)

// MonthlyRent returns the fixed rent for the room type.
func (t RoomType) MonthlyRent() int64 {
	if t == RoomSingle {
		return RentSingle
	}
	return RentDouble
}

type RoomStatus string

const (
	RoomVacant   RoomStatus = "vacant"
	RoomOccupied RoomStatus = "occupied"
)

// Room is a row of the room table. TenantID is set exactly when the room
// is occupied.
type Room struct {
	RoomNumber string     `json:"roomNumber" validate:"required"`
	Floor      int        `json:"floor" validate:"gte=1"`
	RoomType   RoomType   `json:"roomType" validate:"oneof=single double"`
	Status     RoomStatus `json:"status" validate:"oneof=vacant occupied"`
	TenantID   *string    `json:"tenantId" validate:"required_if=Status occupied,excluded_if=Status vacant"`
}

func (r Room) Occupied() bool {
	return r.Status == RoomOccupied
}
