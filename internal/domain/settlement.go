package domain

// RecomputeSettlement refreshes the derived money fields on a reservation
// from its stored amounts. pending_amount and payment_status are materialized
// views over (total, extra, paid): they are recomputed here after every
// mutation of paid_amount, total_amount or extra_charges, and never edited
// directly. The function is idempotent.
func RecomputeSettlement(r *Reservation) {
	pending := r.TotalAmount + r.ExtraCharges - r.PaidAmount
	if pending < 0 {
		pending = 0
	}
	r.PendingAmount = pending

	// A zero balance settles the reservation even when nothing was ever
	// paid: a fully discounted stay starts out paid, not pending.
	switch {
	case pending == 0:
		r.PaymentStatus = PaymentStatusPaid
	case r.PaidAmount == 0:
		r.PaymentStatus = PaymentStatusPending
	default:
		r.PaymentStatus = PaymentStatusPartial
	}
}

// ApplyPayment adds a successful settlement amount and recomputes the
// derived fields. Returns an OverpaymentError when the amount exceeds what
// is still owed.
func ApplyPayment(r *Reservation, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > r.PendingAmount {
		return &OverpaymentError{Pending: r.PendingAmount, Requested: amount}
	}
	r.PaidAmount += amount
	RecomputeSettlement(r)
	return nil
}

// ApplyRefund reverses a previously settled amount, flooring paid_amount at
// zero, and recomputes the derived fields.
func ApplyRefund(r *Reservation, amount int64) {
	r.PaidAmount -= amount
	if r.PaidAmount < 0 {
		r.PaidAmount = 0
	}
	RecomputeSettlement(r)
}

// ApplyExtraCharges adds post-booking charges (minibar, late fees) and
// recomputes the derived fields.
func ApplyExtraCharges(r *Reservation, amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	r.ExtraCharges += amount
	RecomputeSettlement(r)
	return nil
}
