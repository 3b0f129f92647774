// Package ledger holds the authoritative state of the ticket marketplace:
// the occasion table, seat assignments, purchase flags and the aggregate
// balance. Every mutating operation is admitted through a single mutex,
// evaluated against current state and either fully committed or fully
// rejected, so callers always observe a consistent ledger.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"ticketchain/internal/errors"
	"ticketchain/internal/models"
)

// FundSink receives the aggregate balance during a withdrawal. A returned
// error aborts the withdrawal and leaves the balance untouched.
type FundSink interface {
	Transfer(ctx context.Context, recipient string, amount int64) error
}

// Config carries the construction-time parameters of a ledger instance.
// Admin is the only identity allowed to list occasions and withdraw funds;
// it is fixed for the ledger's lifetime.
type Config struct {
	Admin  string
	Name   string
	Symbol string
}

// Ledger is the single stateful component. Instances are independent, so
// tests can run as many as they like side by side.
type Ledger struct {
	mu sync.Mutex

	admin  string
	name   string
	symbol string

	totalOccasions int64
	totalSupply    int64
	occasions      map[int64]models.Occasion

	// seat assignments: occasion id -> seat number -> buyer identity
	seats map[int64]map[int64]string
	// purchase flags: occasion id -> buyer identity -> has bought
	bought map[int64]map[string]bool
	// per-occasion roster of sold seats, insertion order
	roster map[int64][]int64

	balance int64
}

// New creates an empty ledger owned by cfg.Admin.
func New(cfg Config) *Ledger {
	return &Ledger{
		admin:     cfg.Admin,
		name:      cfg.Name,
		symbol:    cfg.Symbol,
		occasions: make(map[int64]models.Occasion),
		seats:     make(map[int64]map[int64]string),
		bought:    make(map[int64]map[string]bool),
		roster:    make(map[int64][]int64),
	}
}

// Name returns the ledger's display name.
func (l *Ledger) Name() string { return l.name }

// Symbol returns the ledger's ticket symbol.
func (l *Ledger) Symbol() string { return l.symbol }

// Admin returns the administrator identity.
func (l *Ledger) Admin() string { return l.admin }

// List creates a new occasion and returns its id. Only the administrator
// may list. MaxTickets of zero is legal and produces an occasion that can
// never sell a seat.
func (l *Ledger) List(caller, name string, cost int64, maxTickets int64, date, time, location string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.admin {
		return 0, fmt.Errorf("list occasion: %w", errors.ErrUnauthorized)
	}
	if cost < 0 {
		return 0, fmt.Errorf("list occasion: negative cost %d", cost)
	}
	if maxTickets < 0 {
		return 0, fmt.Errorf("list occasion: negative max tickets %d", maxTickets)
	}

	l.totalOccasions++
	id := l.totalOccasions
	l.occasions[id] = models.Occasion{
		ID:         id,
		Name:       name,
		Cost:       cost,
		Tickets:    maxTickets,
		MaxTickets: maxTickets,
		Date:       date,
		Time:       time,
		Location:   location,
	}
	return id, nil
}

// GetOccasion returns the occasion with the given id.
func (l *Ledger) GetOccasion(id int64) (models.Occasion, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	occ, ok := l.occasions[id]
	if !ok {
		return models.Occasion{}, fmt.Errorf("get occasion %d: %w", id, errors.ErrNotFound)
	}
	return occ, nil
}

// TotalOccasions returns the number of occasions ever listed.
func (l *Ledger) TotalOccasions() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalOccasions
}

// TotalSupply returns the number of tickets ever minted across all occasions.
func (l *Ledger) TotalSupply() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalSupply
}

// Mint sells the given seat of an occasion to the caller and returns the
// ticket serial. Preconditions are checked in a fixed order so the reported
// error is deterministic: unknown occasion, then sold out, then payment
// mismatch, then seat already taken. On any failure nothing changes and the
// attached payment is never retained.
//
// Seat numbers are not range-checked against the inventory; scarcity is
// enforced purely by the remaining-ticket counter, matching the original
// marketplace behavior.
func (l *Ledger) Mint(caller string, occasionID, seat, payment int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	occ, ok := l.occasions[occasionID]
	if !ok {
		return 0, fmt.Errorf("mint: occasion %d: %w", occasionID, errors.ErrNotFound)
	}
	if occ.Tickets == 0 {
		return 0, fmt.Errorf("mint: occasion %d: %w", occasionID, errors.ErrSoldOut)
	}
	if payment != occ.Cost {
		return 0, fmt.Errorf("mint: occasion %d: paid %d, cost %d: %w",
			occasionID, payment, occ.Cost, errors.ErrIncorrectPayment)
	}
	if _, taken := l.seats[occasionID][seat]; taken {
		return 0, fmt.Errorf("mint: occasion %d seat %d: %w", occasionID, seat, errors.ErrSeatTaken)
	}

	// All preconditions hold: apply the whole transition.
	occ.Tickets--
	l.occasions[occasionID] = occ

	if l.seats[occasionID] == nil {
		l.seats[occasionID] = make(map[int64]string)
	}
	l.seats[occasionID][seat] = caller

	if l.bought[occasionID] == nil {
		l.bought[occasionID] = make(map[string]bool)
	}
	l.bought[occasionID][caller] = true

	l.roster[occasionID] = append(l.roster[occasionID], seat)
	l.balance += payment

	l.totalSupply++
	return l.totalSupply, nil
}

// SeatTaken returns the buyer identity holding the seat, or ok=false if the
// seat is unsold.
func (l *Ledger) SeatTaken(occasionID, seat int64) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	buyer, ok := l.seats[occasionID][seat]
	return buyer, ok
}

// HasBought reports whether the identity has completed at least one purchase
// for the occasion.
func (l *Ledger) HasBought(occasionID int64, identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bought[occasionID][identity]
}

// SeatsTaken returns the sold seat numbers of an occasion in purchase order.
// The returned slice is a copy; callers may keep it.
func (l *Ledger) SeatsTaken(occasionID int64) []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	seats := make([]int64, len(l.roster[occasionID]))
	copy(seats, l.roster[occasionID])
	return seats
}

// Balance returns the current aggregate balance.
func (l *Ledger) Balance() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Withdraw drains the aggregate balance to the administrator through the
// given sink. The balance is zeroed only after the sink accepts the
// transfer; a sink failure surfaces as ErrTransferFailed with the balance
// unchanged. The amount transferred is returned.
func (l *Ledger) Withdraw(ctx context.Context, caller string, sink FundSink) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.admin {
		return 0, fmt.Errorf("withdraw: %w", errors.ErrUnauthorized)
	}

	amount := l.balance
	if err := sink.Transfer(ctx, l.admin, amount); err != nil {
		return 0, fmt.Errorf("withdraw %d to %s: %v: %w", amount, l.admin, err, errors.ErrTransferFailed)
	}

	l.balance = 0
	return amount, nil
}
