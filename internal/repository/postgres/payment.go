package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hotelops-backend/internal/domain"
	"hotelops-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

// lockSettlement loads the money view of a reservation with its row locked,
// so that concurrent payments, refunds and charge edits serialize and the
// derived fields are always recomputed against the latest amounts.
func lockSettlement(ctx context.Context, tx *sql.Tx, hotelID, reservationID int32) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	query := `SELECT id, hotel_id, booking_reference, customer_name, customer_email, status,
	            total_amount, discount_amount, extra_charges, paid_amount, pending_amount, payment_status
	          FROM reservations WHERE hotel_id = $1 AND id = $2 FOR UPDATE`
	err := tx.QueryRowContext(ctx, query, hotelID, reservationID).Scan(
		&res.ID, &res.HotelID, &res.BookingReference, &res.CustomerName, &res.CustomerEmail, &res.Status,
		&res.TotalAmount, &res.DiscountAmount, &res.ExtraCharges, &res.PaidAmount, &res.PendingAmount, &res.PaymentStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

func updateSettlement(ctx context.Context, tx *sql.Tx, res *domain.Reservation) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE reservations SET extra_charges = $1, paid_amount = $2, pending_amount = $3, payment_status = $4, updated_on = $5
		 WHERE id = $6`,
		res.ExtraCharges, res.PaidAmount, res.PendingAmount, res.PaymentStatus, time.Now(), res.ID)
	return err
}

func (r *paymentRepository) RecordPayment(ctx context.Context, p *domain.PaymentTransaction) (*domain.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := lockSettlement(ctx, tx, p.HotelID, p.ReservationID)
	if err != nil {
		return nil, err
	}
	if res.Status == domain.ReservationStatusCancelled {
		return nil, domain.ErrReservationCancelled
	}
	if err := domain.ApplyPayment(res, p.Amount); err != nil {
		return nil, err
	}

	now := time.Now()
	p.Status = domain.TransactionStatusSuccess
	err = tx.QueryRowContext(ctx,
		`INSERT INTO payment_transactions (hotel_id, reservation_id, amount, method, status, receipt_number, reference_id, recorded_by, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		p.HotelID, p.ReservationID, p.Amount, p.Method, p.Status, p.ReceiptNumber, p.ReferenceID, p.RecordedBy, now).Scan(&p.ID)
	if err != nil {
		return nil, mapConflictErr(err)
	}
	p.CreatedOn = now.Format("2006-01-02")

	if err := updateSettlement(ctx, tx, res); err != nil {
		return nil, mapConflictErr(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, mapConflictErr(err)
	}
	return res, nil
}

func (r *paymentRepository) RefundTransaction(ctx context.Context, hotelID, transactionID int32) (*domain.PaymentTransaction, *domain.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	p := &domain.PaymentTransaction{}
	var recordedBy sql.NullInt32
	var createdOn time.Time
	err = tx.QueryRowContext(ctx,
		`SELECT id, hotel_id, reservation_id, amount, method, status, receipt_number, COALESCE(reference_id, ''), recorded_by, created_on
		 FROM payment_transactions WHERE hotel_id = $1 AND id = $2 FOR UPDATE`,
		hotelID, transactionID).Scan(
		&p.ID, &p.HotelID, &p.ReservationID, &p.Amount, &p.Method, &p.Status, &p.ReceiptNumber, &p.ReferenceID, &recordedBy, &createdOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrTransactionNotFound
		}
		return nil, nil, err
	}
	if recordedBy.Valid {
		p.RecordedBy = &recordedBy.Int32
	}
	p.CreatedOn = createdOn.Format("2006-01-02")
	if p.Status != domain.TransactionStatusSuccess {
		return nil, nil, domain.ErrNotRefundable
	}

	res, err := lockSettlement(ctx, tx, hotelID, p.ReservationID)
	if err != nil {
		return nil, nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE payment_transactions SET status = 'refunded' WHERE id = $1`, p.ID); err != nil {
		return nil, nil, err
	}
	p.Status = domain.TransactionStatusRefunded

	domain.ApplyRefund(res, p.Amount)
	if err := updateSettlement(ctx, tx, res); err != nil {
		return nil, nil, mapConflictErr(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, mapConflictErr(err)
	}
	return p, res, nil
}

func (r *paymentRepository) AddExtraCharges(ctx context.Context, hotelID, reservationID int32, amount int64) (*domain.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := lockSettlement(ctx, tx, hotelID, reservationID)
	if err != nil {
		return nil, err
	}
	if err := domain.ApplyExtraCharges(res, amount); err != nil {
		return nil, err
	}
	if err := updateSettlement(ctx, tx, res); err != nil {
		return nil, mapConflictErr(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, mapConflictErr(err)
	}
	return res, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, hotelID, id int32) (*domain.PaymentTransaction, error) {
	p := &domain.PaymentTransaction{}
	var recordedBy sql.NullInt32
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT id, hotel_id, reservation_id, amount, method, status, receipt_number, COALESCE(reference_id, ''), recorded_by, created_on
		 FROM payment_transactions WHERE hotel_id = $1 AND id = $2`,
		hotelID, id).Scan(
		&p.ID, &p.HotelID, &p.ReservationID, &p.Amount, &p.Method, &p.Status, &p.ReceiptNumber, &p.ReferenceID, &recordedBy, &createdOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	if recordedBy.Valid {
		p.RecordedBy = &recordedBy.Int32
	}
	p.CreatedOn = createdOn.Format("2006-01-02")
	return p, nil
}

func (r *paymentRepository) ListByReservation(ctx context.Context, hotelID, reservationID int32, page, pageSize int32) ([]domain.PaymentTransaction, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM payment_transactions WHERE hotel_id = $1 AND reservation_id = $2`,
		hotelID, reservationID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, hotel_id, reservation_id, amount, method, status, receipt_number, COALESCE(reference_id, ''), recorded_by, created_on
		 FROM payment_transactions WHERE hotel_id = $1 AND reservation_id = $2
		 ORDER BY created_on DESC LIMIT $3 OFFSET $4`,
		hotelID, reservationID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.PaymentTransaction
	for rows.Next() {
		var p domain.PaymentTransaction
		var recordedBy sql.NullInt32
		var createdOn time.Time
		if err := rows.Scan(&p.ID, &p.HotelID, &p.ReservationID, &p.Amount, &p.Method, &p.Status, &p.ReceiptNumber, &p.ReferenceID, &recordedBy, &createdOn); err != nil {
			return nil, 0, err
		}
		if recordedBy.Valid {
			p.RecordedBy = &recordedBy.Int32
		}
		p.CreatedOn = createdOn.Format("2006-01-02")
		txs = append(txs, p)
	}
	return txs, count, rows.Err()
}
