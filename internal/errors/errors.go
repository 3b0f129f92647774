// Package errors defines the sentinel errors of the ticket ledger.
// Every failed operation surfaces exactly one of these values (possibly
// wrapped); handlers translate them into HTTP status codes with errors.Is.
package errors

import "errors"

// ErrUnauthorized is returned when the caller is not the ledger administrator
// for an admin-gated operation (listing occasions, withdrawing funds).
var ErrUnauthorized = errors.New("caller is not the ledger administrator")

// ErrNotFound is returned when the referenced occasion does not exist.
var ErrNotFound = errors.New("occasion not found")

// ErrSoldOut is returned when the occasion has no tickets remaining.
var ErrSoldOut = errors.New("occasion is sold out")

// ErrIncorrectPayment is returned when the attached payment does not match
// the occasion cost exactly.
var ErrIncorrectPayment = errors.New("payment does not match ticket cost")

// ErrSeatTaken is returned when the requested seat is already assigned.
var ErrSeatTaken = errors.New("seat already taken")

// ErrTransferFailed is returned when the fund transfer to the administrator
// cannot complete. The ledger balance is left unchanged.
var ErrTransferFailed = errors.New("fund transfer failed")
