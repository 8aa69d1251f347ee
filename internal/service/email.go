package service

import (
	"context"
	"fmt"

	"hotelops-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewEmailService(apiKey, from, fromName string) EmailService {
	return &emailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, body string) error {
	// Without an API key (dev, tests) delivery is a logged no-op.
	if s.apiKey == "" {
		logger.Debug("Email delivery skipped, no API key configured", "to", to, "subject", subject)
		return nil
	}

	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)

	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, email, name, reference, checkIn, checkOut string, total int64) error {
	subject := fmt.Sprintf("Booking Confirmed - %s", reference)
	body := fmt.Sprintf("Hello %s,\n\nYour reservation %s is confirmed.\n\nCheck-in: %s\nCheck-out: %s\nTotal amount: %d\n\nWe look forward to hosting you.",
		name, reference, checkIn, checkOut, total)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendCancellationNotice(ctx context.Context, email, name, reference, reason string) error {
	subject := fmt.Sprintf("Reservation Cancelled - %s", reference)
	body := fmt.Sprintf("Hello %s,\n\nYour reservation %s has been cancelled.", name, reference)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendCheckOutReceipt(ctx context.Context, email, name, reference string, total, paid, pending int64) error {
	subject := fmt.Sprintf("Thank You for Staying - %s", reference)
	body := fmt.Sprintf("Hello %s,\n\nYou have been checked out of reservation %s.\n\nTotal charges: %d\nPaid: %d\nOutstanding: %d\n\nSafe travels.",
		name, reference, total, paid, pending)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendArrivalReminder(ctx context.Context, email, name, reference, checkIn string) error {
	subject := fmt.Sprintf("See You Tomorrow - %s", reference)
	body := fmt.Sprintf("Hello %s,\n\nThis is a reminder that your stay under reservation %s begins on %s.",
		name, reference, checkIn)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, email, name, receiptNumber string, amount, pending int64) error {
	subject := fmt.Sprintf("Payment Received - %s", receiptNumber)
	body := fmt.Sprintf("Hello %s,\n\nWe received your payment of %d (receipt %s).\nRemaining balance: %d.",
		name, amount, receiptNumber, pending)
	return s.send(ctx, email, name, subject, body)
}
