package jobs

import (
	"context"
	"errors"
	"time"

	"hotelops-backend/internal/domain"
	"hotelops-backend/internal/logger"
	"hotelops-backend/internal/utils"
)

// systemActorID marks transitions performed by scheduled jobs rather than
// front-desk staff.
const systemActorID int32 = 0

// MarkNoShowReservations flags confirmed reservations whose guests never
// arrived within the grace window. Each candidate goes through the lifecycle
// service, so the status flip and the room release commit in one
// transaction per reservation.
func (jr *JobRunner) MarkNoShowReservations() {
	jr.runWithRecovery("MarkNoShowReservations", func() {
		ctx := context.Background()

		grace := time.Duration(jr.config.Policy.NoShowGraceHours) * time.Hour
		cutoff := time.Now().UTC().Add(-grace).Format(utils.DateLayout)

		rows, err := jr.db.QueryContext(ctx, `
			SELECT id, hotel_id, booking_reference
			FROM reservations
			WHERE status = 'confirmed'
			  AND check_in_date <= $1
			ORDER BY id`, cutoff)
		if err != nil {
			logger.Error("Failed to load no-show candidates", "error", err)
			return
		}
		defer rows.Close()

		type candidate struct {
			id, hotelID int32
			reference   string
		}
		var candidates []candidate
		for rows.Next() {
			var c candidate
			if err := rows.Scan(&c.id, &c.hotelID, &c.reference); err != nil {
				logger.Error("Failed to scan no-show candidate", "error", err)
				continue
			}
			candidates = append(candidates, c)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating no-show candidates", "error", err)
			return
		}

		marked := 0
		for _, c := range candidates {
			_, err := jr.services.Lifecycle.MarkNoShow(ctx, c.hotelID, c.id, systemActorID)
			if err != nil {
				// Losing the race means the desk handled the guest between
				// the candidate read and the transition.
				var transition *domain.InvalidTransitionError
				if errors.Is(err, domain.ErrConflictRetry) || errors.As(err, &transition) {
					logger.Debug("No-show candidate already transitioned",
						"reservation_id", c.id,
						"booking_reference", c.reference)
					continue
				}
				logger.Error("Failed to mark reservation as no-show",
					"reservation_id", c.id,
					"booking_reference", c.reference,
					"error", err)
				continue
			}
			marked++
			logger.Debug("Marked reservation as no-show",
				"reservation_id", c.id,
				"hotel_id", c.hotelID,
				"booking_reference", c.reference)
		}

		logger.Info("Marked reservations as no-show", "candidates", len(candidates), "marked", marked)
	})
}

// SendArrivalReminders emails guests whose stay begins tomorrow.
func (jr *JobRunner) SendArrivalReminders() {
	jr.runWithRecovery("SendArrivalReminders", func() {
		ctx := context.Background()

		tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(utils.DateLayout)

		arrivals, err := jr.store.ListArrivalsOn(ctx, tomorrow)
		if err != nil {
			logger.Error("Failed to load upcoming arrivals", "error", err)
			return
		}

		sent := 0
		for _, res := range arrivals {
			if res.CustomerEmail == "" {
				continue
			}
			err := jr.services.Email.SendArrivalReminder(ctx,
				res.CustomerEmail, res.CustomerName, res.BookingReference, res.CheckInDate)
			if err != nil {
				logger.Error("Failed to send arrival reminder",
					"reservation_id", res.ID,
					"booking_reference", res.BookingReference,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent arrival reminders", "arrivals", len(arrivals), "sent", sent)
	})
}
