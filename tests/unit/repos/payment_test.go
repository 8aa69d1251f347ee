package repos

import (
	"context"
	"testing"
	"time"

	"hotelops-backend/internal/domain"
	"hotelops-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var settlementRows = []string{
	"id", "hotel_id", "booking_reference", "customer_name", "customer_email", "status",
	"total_amount", "discount_amount", "extra_charges", "paid_amount", "pending_amount", "payment_status",
}

func TestPaymentRepository_RecordPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	payment := func() *domain.PaymentTransaction {
		return &domain.PaymentTransaction{
			HotelID:       7,
			ReservationID: 42,
			Amount:        8000,
			Method:        domain.PaymentMethodCard,
			ReceiptNumber: "RCP-0007-20260910-AB12CD",
		}
	}

	t.Run("Success Locks Row And Recomputes", func(t *testing.T) {
		p := payment()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM reservations WHERE hotel_id = \\$1 AND id = \\$2 FOR UPDATE").
			WithArgs(p.HotelID, p.ReservationID).
			WillReturnRows(sqlmock.NewRows(settlementRows).
				AddRow(42, 7, "0007-20260901-0003", "Asha Verma", "asha@test.com", "confirmed",
					20000, 0, 0, 0, 20000, "pending"))
		mock.ExpectQuery("INSERT INTO payment_transactions").
			WithArgs(p.HotelID, p.ReservationID, p.Amount, p.Method, domain.TransactionStatusSuccess,
				p.ReceiptNumber, p.ReferenceID, nil, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
		mock.ExpectExec("UPDATE reservations SET extra_charges").
			WithArgs(int64(0), int64(8000), int64(12000), domain.PaymentStatusPartial, sqlmock.AnyArg(), int32(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		res, err := repo.RecordPayment(ctx, p)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), p.ID)
		assert.Equal(t, domain.TransactionStatusSuccess, p.Status)
		assert.Equal(t, int64(8000), res.PaidAmount)
		assert.Equal(t, int64(12000), res.PendingAmount)
		assert.Equal(t, domain.PaymentStatusPartial, res.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Cancelled Reservation Rejected", func(t *testing.T) {
		p := payment()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM reservations WHERE hotel_id = \\$1 AND id = \\$2 FOR UPDATE").
			WithArgs(p.HotelID, p.ReservationID).
			WillReturnRows(sqlmock.NewRows(settlementRows).
				AddRow(42, 7, "0007-20260901-0003", "Asha Verma", "asha@test.com", "cancelled",
					20000, 0, 0, 0, 20000, "pending"))
		mock.ExpectRollback()

		res, err := repo.RecordPayment(ctx, p)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrReservationCancelled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Overpayment Rejected", func(t *testing.T) {
		p := payment()
		p.Amount = 30000

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM reservations WHERE hotel_id = \\$1 AND id = \\$2 FOR UPDATE").
			WithArgs(p.HotelID, p.ReservationID).
			WillReturnRows(sqlmock.NewRows(settlementRows).
				AddRow(42, 7, "0007-20260901-0003", "Asha Verma", "asha@test.com", "confirmed",
					20000, 0, 0, 0, 20000, "pending"))
		mock.ExpectRollback()

		res, err := repo.RecordPayment(ctx, p)
		assert.Nil(t, res)
		var overErr *domain.OverpaymentError
		assert.ErrorAs(t, err, &overErr)
		assert.Equal(t, int64(20000), overErr.Pending)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Reservation", func(t *testing.T) {
		p := payment()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM reservations WHERE hotel_id = \\$1 AND id = \\$2 FOR UPDATE").
			WithArgs(p.HotelID, p.ReservationID).
			WillReturnRows(sqlmock.NewRows(settlementRows))
		mock.ExpectRollback()

		res, err := repo.RecordPayment(ctx, p)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrReservationNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_RefundTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	txRows := func(status string) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "hotel_id", "reservation_id", "amount", "method", "status", "receipt_number", "reference_id", "recorded_by", "created_on"}).
			AddRow(5, 7, 42, 8000, "card", status, "RCP-0007-20260910-AB12CD", "", nil, time.Now())
	}

	t.Run("Success Reverses Contribution", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM payment_transactions WHERE hotel_id = \\$1 AND id = \\$2 FOR UPDATE").
			WithArgs(int32(7), int32(5)).
			WillReturnRows(txRows("success"))
		mock.ExpectQuery("SELECT (.+) FROM reservations WHERE hotel_id = \\$1 AND id = \\$2 FOR UPDATE").
			WithArgs(int32(7), int32(42)).
			WillReturnRows(sqlmock.NewRows(settlementRows).
				AddRow(42, 7, "0007-20260901-0003", "Asha Verma", "asha@test.com", "confirmed",
					20000, 0, 0, 8000, 12000, "partial"))
		mock.ExpectExec("UPDATE payment_transactions SET status = 'refunded'").
			WithArgs(int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE reservations SET extra_charges").
			WithArgs(int64(0), int64(0), int64(20000), domain.PaymentStatusPending, sqlmock.AnyArg(), int32(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		p, res, err := repo.RefundTransaction(ctx, 7, 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.TransactionStatusRefunded, p.Status)
		assert.Equal(t, int64(0), res.PaidAmount)
		assert.Equal(t, int64(20000), res.PendingAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Refunded Rejected", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM payment_transactions WHERE hotel_id = \\$1 AND id = \\$2 FOR UPDATE").
			WithArgs(int32(7), int32(5)).
			WillReturnRows(txRows("refunded"))
		mock.ExpectRollback()

		p, res, err := repo.RefundTransaction(ctx, 7, 5)
		assert.Nil(t, p)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrNotRefundable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM payment_transactions WHERE hotel_id = \\$1 AND id = \\$2 FOR UPDATE").
			WithArgs(int32(7), int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		p, res, err := repo.RefundTransaction(ctx, 7, 99)
		assert.Nil(t, p)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_AddExtraCharges(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM reservations WHERE hotel_id = \\$1 AND id = \\$2 FOR UPDATE").
			WithArgs(int32(7), int32(42)).
			WillReturnRows(sqlmock.NewRows(settlementRows).
				AddRow(42, 7, "0007-20260901-0003", "Asha Verma", "asha@test.com", "checked_in",
					20000, 0, 0, 20000, 0, "paid"))
		mock.ExpectExec("UPDATE reservations SET extra_charges").
			WithArgs(int64(3000), int64(20000), int64(3000), domain.PaymentStatusPartial, sqlmock.AnyArg(), int32(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		res, err := repo.AddExtraCharges(ctx, 7, 42, 3000)
		assert.NoError(t, err)
		assert.Equal(t, int64(3000), res.ExtraCharges)
		assert.Equal(t, int64(3000), res.PendingAmount)
		assert.Equal(t, domain.PaymentStatusPartial, res.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
