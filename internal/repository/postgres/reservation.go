package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelops-backend/internal/domain"
	"hotelops-backend/internal/repository"

	"github.com/lib/pq"
)

const reservationColumns = `id, hotel_id, booking_reference, customer_name, customer_email, customer_phone,
	guests_count, check_in_date, check_out_date, nights, status, total_rooms, booking_source,
	total_amount, discount_amount, extra_charges, paid_amount, pending_amount, payment_status,
	actual_check_in, actual_check_out, early_check_in, late_check_out, checked_in_by, checked_out_by,
	created_on, updated_on`

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx so the overlap check can
// run standalone (pre-flight) and inside the creation transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// mapConflictErr translates serialization failures, deadlocks and
// unique-constraint races into the retryable domain error. Everything else
// passes through unchanged.
func mapConflictErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01", "23505":
			return fmt.Errorf("%w: %v", domain.ErrConflictRetry, err)
		}
	}
	return err
}

func (r *reservationRepository) CreateWithRooms(ctx context.Context, res *domain.Reservation) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Re-run the overlap check inside the transaction. The pre-flight check
	// outside it is advisory only; this one is the guarantee.
	conflicts, err := findOverlapping(ctx, tx, res.HotelID, res.RoomIDs(), res.CheckInDate, res.CheckOutDate, 0)
	if err != nil {
		return mapConflictErr(err)
	}
	if len(conflicts) > 0 {
		return &domain.RoomUnavailableError{RoomNumbers: conflicts}
	}

	// Per-hotel-per-day atomic counter. Counting existing rows races under
	// concurrent creates; the upsert increment does not.
	now := time.Now().UTC()
	var seq int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO booking_sequences (hotel_id, day, value) VALUES ($1, $2, 1)
		 ON CONFLICT (hotel_id, day) DO UPDATE SET value = booking_sequences.value + 1
		 RETURNING value`,
		res.HotelID, now.Format("2006-01-02")).Scan(&seq)
	if err != nil {
		return mapConflictErr(err)
	}
	res.BookingReference = domain.BookingReference(res.HotelID, now, seq)

	query := `INSERT INTO reservations (hotel_id, booking_reference, customer_name, customer_email, customer_phone,
	            guests_count, check_in_date, check_out_date, nights, status, total_rooms, booking_source,
	            total_amount, discount_amount, extra_charges, paid_amount, pending_amount, payment_status,
	            created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	          RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		res.HotelID, res.BookingReference, res.CustomerName, res.CustomerEmail, res.CustomerPhone,
		res.GuestsCount, res.CheckInDate, res.CheckOutDate, res.Nights, res.Status, res.TotalRooms, res.BookingSource,
		res.TotalAmount, res.DiscountAmount, res.ExtraCharges, res.PaidAmount, res.PendingAmount, res.PaymentStatus,
		now, now).Scan(&res.ID)
	if err != nil {
		return mapConflictErr(err)
	}

	for _, br := range res.Rooms {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO reservation_rooms (reservation_id, room_id, room_number, category_name, guests_in_room, price_per_night, nights, subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			res.ID, br.RoomID, br.RoomNumber, br.CategoryName, br.GuestsInRoom, br.PricePerNight, br.Nights, br.Subtotal)
		if err != nil {
			return mapConflictErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return mapConflictErr(err)
	}
	res.CreatedOn = now.Format("2006-01-02")
	res.UpdatedOn = res.CreatedOn
	return nil
}

func findOverlapping(ctx context.Context, q querier, hotelID int32, roomIDs []int32, checkIn, checkOut string, excludeReservationID int32) ([]string, error) {
	// Half-open windows: existing.check_in < requested.check_out AND
	// requested.check_in < existing.check_out. Only confirmed and
	// checked-in reservations block.
	query := `SELECT DISTINCT rr.room_number
	          FROM reservations res
	          JOIN reservation_rooms rr ON rr.reservation_id = res.id
	          WHERE res.hotel_id = $1
	            AND rr.room_id = ANY($2)
	            AND res.status IN ('confirmed', 'checked_in')
	            AND res.check_in_date < $4
	            AND $3 < res.check_out_date
	            AND ($5 = 0 OR res.id <> $5)
	          ORDER BY rr.room_number`
	rows, err := q.QueryContext(ctx, query, hotelID, pq.Array(roomIDs), checkIn, checkOut, excludeReservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

func (r *reservationRepository) FindOverlapping(ctx context.Context, hotelID int32, roomIDs []int32, checkIn, checkOut string, excludeReservationID int32) ([]string, error) {
	return findOverlapping(ctx, r.db, hotelID, roomIDs, checkIn, checkOut, excludeReservationID)
}

func scanReservation(row *sql.Row) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	var checkIn, checkOut, createdOn, updatedOn time.Time
	var actualIn, actualOut sql.NullTime
	var checkedInBy, checkedOutBy sql.NullInt32
	var source sql.NullString
	err := row.Scan(&res.ID, &res.HotelID, &res.BookingReference, &res.CustomerName, &res.CustomerEmail, &res.CustomerPhone,
		&res.GuestsCount, &checkIn, &checkOut, &res.Nights, &res.Status, &res.TotalRooms, &source,
		&res.TotalAmount, &res.DiscountAmount, &res.ExtraCharges, &res.PaidAmount, &res.PendingAmount, &res.PaymentStatus,
		&actualIn, &actualOut, &res.EarlyCheckIn, &res.LateCheckOut, &checkedInBy, &checkedOutBy,
		&createdOn, &updatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	res.CheckInDate = checkIn.Format("2006-01-02")
	res.CheckOutDate = checkOut.Format("2006-01-02")
	res.BookingSource = source.String
	if actualIn.Valid {
		res.ActualCheckIn = &actualIn.Time
	}
	if actualOut.Valid {
		res.ActualCheckOut = &actualOut.Time
	}
	if checkedInBy.Valid {
		res.CheckedInBy = &checkedInBy.Int32
	}
	if checkedOutBy.Valid {
		res.CheckedOutBy = &checkedOutBy.Int32
	}
	res.CreatedOn = createdOn.Format("2006-01-02")
	res.UpdatedOn = updatedOn.Format("2006-01-02")
	return res, nil
}

func (r *reservationRepository) loadRooms(ctx context.Context, reservationID int32) ([]domain.RoomBreakdown, error) {
	query := `SELECT room_id, room_number, category_name, guests_in_room, price_per_night, nights, subtotal
	          FROM reservation_rooms WHERE reservation_id = $1 ORDER BY room_number`
	rows, err := r.db.QueryContext(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breakdown []domain.RoomBreakdown
	for rows.Next() {
		var br domain.RoomBreakdown
		if err := rows.Scan(&br.RoomID, &br.RoomNumber, &br.CategoryName, &br.GuestsInRoom, &br.PricePerNight, &br.Nights, &br.Subtotal); err != nil {
			return nil, err
		}
		breakdown = append(breakdown, br)
	}
	return breakdown, rows.Err()
}

func (r *reservationRepository) GetByID(ctx context.Context, hotelID, id int32) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE hotel_id = $1 AND id = $2`
	res, err := scanReservation(r.db.QueryRowContext(ctx, query, hotelID, id))
	if err != nil {
		return nil, err
	}
	if res.Rooms, err = r.loadRooms(ctx, res.ID); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *reservationRepository) GetByReference(ctx context.Context, hotelID int32, reference string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE hotel_id = $1 AND booking_reference = $2`
	res, err := scanReservation(r.db.QueryRowContext(ctx, query, hotelID, reference))
	if err != nil {
		return nil, err
	}
	if res.Rooms, err = r.loadRooms(ctx, res.ID); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *reservationRepository) List(ctx context.Context, hotelID int32, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	offset := (page - 1) * pageSize
	base := `FROM reservations WHERE hotel_id = $1`
	args := []interface{}{hotelID}
	argIdx := 2
	if status != "" {
		base += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) "+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d", reservationColumns, base, argIdx, argIdx+1)
	args = append(args, pageSize, offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reservations, err := collectReservations(rows)
	if err != nil {
		return nil, 0, err
	}
	for i := range reservations {
		if reservations[i].Rooms, err = r.loadRooms(ctx, reservations[i].ID); err != nil {
			return nil, 0, err
		}
	}
	return reservations, count, nil
}

func (r *reservationRepository) ListArrivalsOn(ctx context.Context, day string) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE status = 'confirmed' AND check_in_date = $1`
	rows, err := r.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func collectReservations(rows *sql.Rows) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	for rows.Next() {
		res := domain.Reservation{}
		var checkIn, checkOut, createdOn, updatedOn time.Time
		var actualIn, actualOut sql.NullTime
		var checkedInBy, checkedOutBy sql.NullInt32
		var source sql.NullString
		err := rows.Scan(&res.ID, &res.HotelID, &res.BookingReference, &res.CustomerName, &res.CustomerEmail, &res.CustomerPhone,
			&res.GuestsCount, &checkIn, &checkOut, &res.Nights, &res.Status, &res.TotalRooms, &source,
			&res.TotalAmount, &res.DiscountAmount, &res.ExtraCharges, &res.PaidAmount, &res.PendingAmount, &res.PaymentStatus,
			&actualIn, &actualOut, &res.EarlyCheckIn, &res.LateCheckOut, &checkedInBy, &checkedOutBy,
			&createdOn, &updatedOn)
		if err != nil {
			return nil, err
		}
		res.CheckInDate = checkIn.Format("2006-01-02")
		res.CheckOutDate = checkOut.Format("2006-01-02")
		res.BookingSource = source.String
		if actualIn.Valid {
			res.ActualCheckIn = &actualIn.Time
		}
		if actualOut.Valid {
			res.ActualCheckOut = &actualOut.Time
		}
		if checkedInBy.Valid {
			res.CheckedInBy = &checkedInBy.Int32
		}
		if checkedOutBy.Valid {
			res.CheckedOutBy = &checkedOutBy.Int32
		}
		res.CreatedOn = createdOn.Format("2006-01-02")
		res.UpdatedOn = updatedOn.Format("2006-01-02")
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *reservationRepository) TransitionWithRooms(ctx context.Context, res *domain.Reservation, from domain.ReservationStatus, roomStatus domain.RoomStatus, settle func(*domain.Reservation) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Reload the money columns under a row lock before writing them back.
	// The caller's snapshot may predate a payment the ledger committed in
	// the meantime; writing snapshot absolutes would erase it.
	err = tx.QueryRowContext(ctx,
		`SELECT total_amount, extra_charges, paid_amount, pending_amount, payment_status
		 FROM reservations WHERE id = $1 AND hotel_id = $2 FOR UPDATE`,
		res.ID, res.HotelID).Scan(&res.TotalAmount, &res.ExtraCharges, &res.PaidAmount, &res.PendingAmount, &res.PaymentStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrReservationNotFound
		}
		return mapConflictErr(err)
	}
	if settle != nil {
		if err := settle(res); err != nil {
			return err
		}
	}

	// The WHERE status guard makes the transition conditional on the state
	// observed by the caller; losing that race leaves the row untouched.
	result, err := tx.ExecContext(ctx,
		`UPDATE reservations
		 SET status = $1, actual_check_in = $2, actual_check_out = $3,
		     early_check_in = $4, late_check_out = $5,
		     checked_in_by = $6, checked_out_by = $7,
		     extra_charges = $8, paid_amount = $9, pending_amount = $10, payment_status = $11,
		     updated_on = $12
		 WHERE id = $13 AND hotel_id = $14 AND status = $15`,
		res.Status, res.ActualCheckIn, res.ActualCheckOut,
		res.EarlyCheckIn, res.LateCheckOut,
		res.CheckedInBy, res.CheckedOutBy,
		res.ExtraCharges, res.PaidAmount, res.PendingAmount, res.PaymentStatus,
		time.Now(),
		res.ID, res.HotelID, from)
	if err != nil {
		return mapConflictErr(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: reservation %d no longer in status %s", domain.ErrConflictRetry, res.ID, from)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE rooms SET status = $1, updated_on = $2 WHERE hotel_id = $3 AND id = ANY($4)`,
		roomStatus, time.Now(), res.HotelID, pq.Array(res.RoomIDs())); err != nil {
		return mapConflictErr(err)
	}

	if err := tx.Commit(); err != nil {
		return mapConflictErr(err)
	}
	return nil
}

func (r *reservationRepository) UpdateStayAndContact(ctx context.Context, res *domain.Reservation) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	conflicts, err := findOverlapping(ctx, tx, res.HotelID, res.RoomIDs(), res.CheckInDate, res.CheckOutDate, res.ID)
	if err != nil {
		return mapConflictErr(err)
	}
	if len(conflicts) > 0 {
		return &domain.RoomUnavailableError{RoomNumbers: conflicts}
	}

	// Same reload as in TransitionWithRooms: paid_amount may have moved
	// since the caller's read and pending/status derive from it.
	err = tx.QueryRowContext(ctx,
		`SELECT extra_charges, paid_amount FROM reservations WHERE id = $1 AND hotel_id = $2 FOR UPDATE`,
		res.ID, res.HotelID).Scan(&res.ExtraCharges, &res.PaidAmount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrReservationNotFound
		}
		return mapConflictErr(err)
	}
	domain.RecomputeSettlement(res)

	result, err := tx.ExecContext(ctx,
		`UPDATE reservations
		 SET customer_name = $1, customer_email = $2, customer_phone = $3, guests_count = $4,
		     check_in_date = $5, check_out_date = $6, nights = $7,
		     total_amount = $8, discount_amount = $9, pending_amount = $10, payment_status = $11,
		     updated_on = $12
		 WHERE id = $13 AND hotel_id = $14 AND status NOT IN ('checked_out', 'cancelled', 'no_show')`,
		res.CustomerName, res.CustomerEmail, res.CustomerPhone, res.GuestsCount,
		res.CheckInDate, res.CheckOutDate, res.Nights,
		res.TotalAmount, res.DiscountAmount, res.PendingAmount, res.PaymentStatus,
		time.Now(),
		res.ID, res.HotelID)
	if err != nil {
		return mapConflictErr(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: reservation %d reached a terminal status", domain.ErrConflictRetry, res.ID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM reservation_rooms WHERE reservation_id = $1`, res.ID); err != nil {
		return mapConflictErr(err)
	}
	for _, br := range res.Rooms {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO reservation_rooms (reservation_id, room_id, room_number, category_name, guests_in_room, price_per_night, nights, subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			res.ID, br.RoomID, br.RoomNumber, br.CategoryName, br.GuestsInRoom, br.PricePerNight, br.Nights, br.Subtotal)
		if err != nil {
			return mapConflictErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return mapConflictErr(err)
	}
	return nil
}
