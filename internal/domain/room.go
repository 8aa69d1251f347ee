package domain

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusOutOfOrder  RoomStatus = "out_of_order"
)

// Bookable reports whether a room can be attached to a new reservation.
// Occupied rooms stay bookable for future windows; only rooms pulled from
// service are blocked outright.
func (s RoomStatus) Bookable() bool {
	return s != RoomStatusMaintenance && s != RoomStatusOutOfOrder
}

// Room is owned by the room catalog. The reservation engine reads price and
// status, and writes status back as a lifecycle side effect.
type Room struct {
	ID            int32      `json:"id"`
	HotelID       int32      `json:"hotel_id"`
	RoomNumber    string     `json:"room_number"`
	CategoryID    int32      `json:"category_id"`
	Status        RoomStatus `json:"status"`
	PricePerNight int64      `json:"price_per_night"`
	CreatedOn     string     `json:"created_on"`
	UpdatedOn     string     `json:"updated_on"`
}

type RoomCategory struct {
	ID           int32  `json:"id"`
	HotelID      int32  `json:"hotel_id"`
	Name         string `json:"name"`
	MaxOccupancy int32  `json:"max_occupancy"`
}
