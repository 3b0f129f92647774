// Package service orchestrates ledger transitions with their write-behind
// collaborators: the Postgres archive, the search index, the listing cache
// and the NATS publisher. The ledger commit is the operation; collaborator
// failures are logged and never unwind a committed transition.
package service

import (
	"context"

	"ticketchain/internal/ledger"
	"ticketchain/internal/models"
)

// OccasionArchive persists committed occasion listings.
type OccasionArchive interface {
	Create(ctx context.Context, occ models.Occasion) error
}

// SaleArchive persists committed seat sales and withdrawals.
type SaleArchive interface {
	RecordSale(ctx context.Context, sale models.SeatSale) error
	RecordWithdrawal(ctx context.Context, w models.Withdrawal) error
}

// Publisher emits committed ledger events.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

// SearchIndex indexes occasions and resolves search queries to occasion ids.
type SearchIndex interface {
	IndexOccasion(ctx context.Context, occ models.Occasion) error
	Search(ctx context.Context, query string, size int) ([]int64, error)
}

// ListingCache caches the occasion listing payload.
type ListingCache interface {
	InvalidateOccasionsList(ctx context.Context) error
}

// Collaborators are the optional write-behind observers of the ledger.
// Any of them may be nil; the ledger runs standalone without them.
type Collaborators struct {
	Occasions OccasionArchive
	Sales     SaleArchive
	Publisher Publisher
	Search    SearchIndex
	Cache     ListingCache
}

type Services struct {
	Occasions   *OccasionService
	Tickets     *TicketService
	Withdrawals *WithdrawalService
}

func NewServices(l *ledger.Ledger, collab Collaborators, sink ledger.FundSink) *Services {
	return &Services{
		Occasions:   NewOccasionService(l, collab),
		Tickets:     NewTicketService(l, collab),
		Withdrawals: NewWithdrawalService(l, collab, sink),
	}
}
