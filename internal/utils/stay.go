package utils

import (
	"fmt"
	"regexp"
	"time"

	"hotelops-backend/internal/domain"
)

// DateLayout is the calendar-day format used across the engine.
const DateLayout = "2006-01-02"

// Stay policy constants. These bound operator input, not the data model.
const (
	MinStayNights = 1
	MaxStayNights = 30
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail checks an address against a simple pattern; full RFC parsing is
// deliberately out of scope for front-desk input.
func ValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}

// ParseDay parses a yyyy-mm-dd calendar day in UTC.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	return t, nil
}

// Day truncates an instant to its UTC calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NightsBetween counts the nights in the half-open window [checkIn, checkOut):
// a guest arriving on the 10th and leaving on the 12th stays two nights.
func NightsBetween(checkIn, checkOut time.Time) int32 {
	return int32(checkOut.Sub(checkIn).Hours() / 24)
}

// RangesOverlap reports whether two half-open day windows share at least one
// night. A checkout on day D never conflicts with a check-in on day D.
func RangesOverlap(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// ValidateStayWindow parses and validates a requested stay window against
// the stay policy, relative to now. It returns the computed nights count
// alongside pass/fail; on failure every broken rule is reported at once so
// the operator can fix the request in one pass.
func ValidateStayWindow(checkInStr, checkOutStr string, now time.Time) (int32, error) {
	var reasons []string

	checkIn, inErr := ParseDay(checkInStr)
	if inErr != nil {
		reasons = append(reasons, inErr.Error())
	}
	checkOut, outErr := ParseDay(checkOutStr)
	if outErr != nil {
		reasons = append(reasons, outErr.Error())
	}
	if len(reasons) > 0 {
		return 0, &domain.InvalidDateRangeError{Reasons: reasons}
	}

	if checkIn.Before(Day(now)) {
		reasons = append(reasons, "check-in date cannot be in the past")
	}
	if !checkOut.After(checkIn) {
		reasons = append(reasons, "check-out date must be after check-in date")
	}

	nights := NightsBetween(checkIn, checkOut)
	if checkOut.After(checkIn) {
		if nights < MinStayNights {
			reasons = append(reasons, fmt.Sprintf("stay must be at least %d night(s)", MinStayNights))
		}
		if nights > MaxStayNights {
			reasons = append(reasons, fmt.Sprintf("stay cannot exceed %d nights", MaxStayNights))
		}
	}

	if len(reasons) > 0 {
		return nights, &domain.InvalidDateRangeError{Reasons: reasons}
	}
	return nights, nil
}
