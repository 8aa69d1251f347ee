package service

import (
	"context"
	"fmt"
	"time"

	"hotelops-backend/internal/domain"
	"hotelops-backend/internal/logger"
	"hotelops-backend/internal/repository"
	"hotelops-backend/internal/utils"
)

// timeNow is swapped out by tests that need a pinned clock.
var timeNow = time.Now

type reservationService struct {
	reservationRepo repository.ReservationRepository
	roomRepo        repository.RoomRepository
	emailSvc        EmailService
	noteRepo        repository.NotificationRepository
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	roomRepo repository.RoomRepository,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		emailSvc:        emailSvc,
		noteRepo:        noteRepo,
	}
}

// resolveRooms loads and vets the requested room set: every id must resolve
// within the hotel, and none may be pulled from service.
func (s *reservationService) resolveRooms(ctx context.Context, hotelID int32, roomIDs []int32) ([]domain.Room, map[int32]domain.RoomCategory, error) {
	if len(roomIDs) == 0 {
		return nil, nil, domain.ErrNoRoomsRequested
	}
	// A repeated id would silently collapse in the id = ANY(...) lookup and
	// masquerade as a missing room; report it by name instead.
	seen := make(map[int32]bool, len(roomIDs))
	for _, id := range roomIDs {
		if seen[id] {
			return nil, nil, &domain.DuplicateRoomError{RoomID: id}
		}
		seen[id] = true
	}

	rooms, err := s.roomRepo.GetByIDs(ctx, hotelID, roomIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	if len(rooms) != len(roomIDs) {
		return nil, nil, domain.ErrRoomNotFound
	}

	var blocked []string
	categoryIDs := make([]int32, 0, len(rooms))
	for _, rm := range rooms {
		if !rm.Status.Bookable() {
			blocked = append(blocked, rm.RoomNumber)
		}
		categoryIDs = append(categoryIDs, rm.CategoryID)
	}
	if len(blocked) > 0 {
		return nil, nil, &domain.RoomBlockedError{RoomNumbers: blocked, Reason: "under maintenance or out of order"}
	}

	categories, err := s.roomRepo.GetCategoriesByIDs(ctx, hotelID, categoryIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load room categories: %w", err)
	}
	byID := make(map[int32]domain.RoomCategory, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return rooms, byID, nil
}

// validateOccupancy sums max occupancy over each room's category and
// compares against the requested head count.
func validateOccupancy(rooms []domain.Room, categories map[int32]domain.RoomCategory, guests int32) error {
	var max int32
	for _, rm := range rooms {
		max += categories[rm.CategoryID].MaxOccupancy
	}
	if guests > max {
		return &domain.OccupancyExceededError{Max: max, Requested: guests}
	}
	return nil
}

// buildBreakdown assembles the denormalized per-room pricing entries. Guest
// placement follows the request when given, otherwise heads are spread
// evenly with the remainder in the first rooms.
func buildBreakdown(rooms []domain.Room, categories map[int32]domain.RoomCategory, nights int32, guests int32, perRoom map[int32]int32) []domain.RoomBreakdown {
	n := int32(len(rooms))
	base := guests / n
	extra := guests % n

	breakdown := make([]domain.RoomBreakdown, 0, len(rooms))
	for i, rm := range rooms {
		inRoom := base
		if int32(i) < extra {
			inRoom++
		}
		if g, ok := perRoom[rm.ID]; ok {
			inRoom = g
		}
		breakdown = append(breakdown, domain.RoomBreakdown{
			RoomID:        rm.ID,
			RoomNumber:    rm.RoomNumber,
			CategoryName:  categories[rm.CategoryID].Name,
			GuestsInRoom:  inRoom,
			PricePerNight: rm.PricePerNight,
			Nights:        nights,
			Subtotal:      rm.PricePerNight * int64(nights),
		})
	}
	return breakdown
}

func (s *reservationService) Create(ctx context.Context, hotelID int32, in CreateReservationInput) (*domain.Reservation, error) {
	if in.CustomerName == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	if !utils.ValidEmail(in.CustomerEmail) {
		return nil, fmt.Errorf("invalid customer email %q", in.CustomerEmail)
	}
	if in.DiscountAmount < 0 {
		return nil, domain.ErrInvalidAmount
	}

	rooms, categories, err := s.resolveRooms(ctx, hotelID, in.RoomIDs)
	if err != nil {
		return nil, err
	}

	nights, err := utils.ValidateStayWindow(in.CheckInDate, in.CheckOutDate, timeNow())
	if err != nil {
		return nil, err
	}

	if err := validateOccupancy(rooms, categories, in.GuestsCount); err != nil {
		return nil, err
	}

	// Advisory pre-check so an obviously doomed request fails before the
	// serializable transaction; the binding check re-runs inside it.
	conflicts, err := s.reservationRepo.FindOverlapping(ctx, hotelID, in.RoomIDs, in.CheckInDate, in.CheckOutDate, 0)
	if err != nil {
		return nil, fmt.Errorf("availability check failed: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, &domain.RoomUnavailableError{RoomNumbers: conflicts}
	}

	breakdown := buildBreakdown(rooms, categories, nights, in.GuestsCount, in.GuestsPerRoom)
	var subtotal int64
	for _, br := range breakdown {
		subtotal += br.Subtotal
	}
	total := subtotal - in.DiscountAmount
	if total < 0 {
		total = 0
	}

	res := &domain.Reservation{
		HotelID:        hotelID,
		CustomerName:   in.CustomerName,
		CustomerEmail:  in.CustomerEmail,
		CustomerPhone:  in.CustomerPhone,
		GuestsCount:    in.GuestsCount,
		CheckInDate:    in.CheckInDate,
		CheckOutDate:   in.CheckOutDate,
		Nights:         nights,
		Status:         domain.ReservationStatusConfirmed,
		Rooms:          breakdown,
		TotalRooms:     int32(len(breakdown)),
		BookingSource:  in.BookingSource,
		TotalAmount:    total,
		DiscountAmount: in.DiscountAmount,
	}
	domain.RecomputeSettlement(res)

	if err := s.reservationRepo.CreateWithRooms(ctx, res); err != nil {
		return nil, err
	}

	logger.Info("Reservation created",
		"booking_reference", res.BookingReference,
		"hotel_id", hotelID,
		"rooms", res.TotalRooms,
		"nights", nights,
		"total_amount", res.TotalAmount)

	// Best effort from here on; the reservation is already committed.
	if err := s.emailSvc.SendBookingConfirmation(ctx, res.CustomerEmail, res.CustomerName, res.BookingReference, res.CheckInDate, res.CheckOutDate, res.TotalAmount); err != nil {
		logger.Warn("Booking confirmation email failed", "booking_reference", res.BookingReference, "error", err)
	}
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		HotelID: hotelID,
		Title:   "New Reservation",
		Message: fmt.Sprintf("%s booked %d room(s), %s to %s", res.CustomerName, res.TotalRooms, res.CheckInDate, res.CheckOutDate),
		Attributes: map[string]string{
			"type":              "RESERVATION_CREATED",
			"booking_reference": res.BookingReference,
		},
	})

	return res, nil
}

func (s *reservationService) Update(ctx context.Context, hotelID, reservationID int32, in UpdateReservationInput) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, hotelID, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status.Terminal() {
		return nil, &domain.InvalidTransitionError{From: res.Status, To: res.Status}
	}

	if in.CustomerName != "" {
		res.CustomerName = in.CustomerName
	}
	if in.CustomerEmail != "" {
		if !utils.ValidEmail(in.CustomerEmail) {
			return nil, fmt.Errorf("invalid customer email %q", in.CustomerEmail)
		}
		res.CustomerEmail = in.CustomerEmail
	}
	if in.CustomerPhone != "" {
		res.CustomerPhone = in.CustomerPhone
	}

	datesChanged := in.CheckInDate != "" || in.CheckOutDate != ""
	if datesChanged {
		checkIn, checkOut := in.CheckInDate, in.CheckOutDate
		if checkIn == "" {
			checkIn = res.CheckInDate
		}
		if checkOut == "" {
			checkOut = res.CheckOutDate
		}
		nights, err := utils.ValidateStayWindow(checkIn, checkOut, timeNow())
		if err != nil {
			return nil, err
		}

		rooms, categories, err := s.resolveRooms(ctx, hotelID, res.RoomIDs())
		if err != nil {
			return nil, err
		}

		guests := res.GuestsCount
		if in.GuestsCount > 0 {
			guests = in.GuestsCount
		}
		if err := validateOccupancy(rooms, categories, guests); err != nil {
			return nil, err
		}

		// Availability is re-verified against everyone else inside the
		// repository transaction; this mirrors creation.
		res.CheckInDate = checkIn
		res.CheckOutDate = checkOut
		res.Nights = nights
		res.GuestsCount = guests
		res.Rooms = buildBreakdown(rooms, categories, nights, guests, nil)

		var subtotal int64
		for _, br := range res.Rooms {
			subtotal += br.Subtotal
		}
		total := subtotal - res.DiscountAmount
		if total < 0 {
			total = 0
		}
		res.TotalAmount = total
		domain.RecomputeSettlement(res)
	} else if in.GuestsCount > 0 && in.GuestsCount != res.GuestsCount {
		rooms, categories, err := s.resolveRooms(ctx, hotelID, res.RoomIDs())
		if err != nil {
			return nil, err
		}
		if err := validateOccupancy(rooms, categories, in.GuestsCount); err != nil {
			return nil, err
		}
		res.GuestsCount = in.GuestsCount
	}

	if err := s.reservationRepo.UpdateStayAndContact(ctx, res); err != nil {
		return nil, err
	}
	logger.Info("Reservation updated", "booking_reference", res.BookingReference, "dates_changed", datesChanged)
	return res, nil
}

func (s *reservationService) Get(ctx context.Context, hotelID, reservationID int32) (*domain.Reservation, error) {
	return s.reservationRepo.GetByID(ctx, hotelID, reservationID)
}

func (s *reservationService) GetByReference(ctx context.Context, hotelID int32, reference string) (*domain.Reservation, error) {
	return s.reservationRepo.GetByReference(ctx, hotelID, reference)
}

func (s *reservationService) List(ctx context.Context, hotelID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.reservationRepo.List(ctx, hotelID, status, page, pageSize)
}
