package service

import (
	"context"
	"fmt"

	"hotelops-backend/internal/domain"
	"hotelops-backend/internal/repository"
	"hotelops-backend/internal/utils"
)

type availabilityService struct {
	reservationRepo repository.ReservationRepository
	roomRepo        repository.RoomRepository
}

func NewAvailabilityService(reservationRepo repository.ReservationRepository, roomRepo repository.RoomRepository) AvailabilityService {
	return &availabilityService{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
	}
}

func (s *availabilityService) CheckRooms(ctx context.Context, hotelID int32, roomIDs []int32, checkIn, checkOut string, excludeReservationID int32) ([]string, error) {
	return s.reservationRepo.FindOverlapping(ctx, hotelID, roomIDs, checkIn, checkOut, excludeReservationID)
}

// Quote answers the read-only pre-flight question "could this booking be
// made right now, and for how much". It holds nothing: the authoritative
// check re-runs inside the creation transaction.
func (s *availabilityService) Quote(ctx context.Context, hotelID int32, roomIDs []int32, checkIn, checkOut string) (*AvailabilityQuote, error) {
	if len(roomIDs) == 0 {
		return nil, domain.ErrNoRoomsRequested
	}

	nights, err := utils.ValidateStayWindow(checkIn, checkOut, timeNow())
	if err != nil {
		return nil, err
	}

	rooms, err := s.roomRepo.GetByIDs(ctx, hotelID, roomIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	if len(rooms) != len(roomIDs) {
		return nil, domain.ErrRoomNotFound
	}

	conflicts, err := s.reservationRepo.FindOverlapping(ctx, hotelID, roomIDs, checkIn, checkOut, 0)
	if err != nil {
		return nil, fmt.Errorf("availability check failed: %w", err)
	}
	conflicted := make(map[string]bool, len(conflicts))
	for _, n := range conflicts {
		conflicted[n] = true
	}

	quote := &AvailabilityQuote{Available: true, Nights: nights}
	for _, rm := range rooms {
		free := rm.Status.Bookable() && !conflicted[rm.RoomNumber]
		line := RoomAvailability{
			RoomID:     rm.ID,
			RoomNumber: rm.RoomNumber,
			Status:     rm.Status,
			Available:  free,
			Subtotal:   rm.PricePerNight * int64(nights),
		}
		if !free {
			quote.Available = false
		}
		quote.EstimatedTotal += line.Subtotal
		quote.Rooms = append(quote.Rooms, line)
	}
	return quote, nil
}
