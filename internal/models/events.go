package models

import "time"

// NATS Event Types
const (
	EventOccasionListed = "occasion.listed"
	EventTicketMinted   = "ticket.minted"
	EventFundsWithdrawn = "funds.withdrawn"
)

// OccasionListedEvent represents a newly listed occasion
type OccasionListedEvent struct {
	OccasionID int64     `json:"occasion_id"`
	Name       string    `json:"name"`
	Cost       int64     `json:"cost"`
	MaxTickets int64     `json:"max_tickets"`
	Timestamp  time.Time `json:"timestamp"`
}

// TicketMintedEvent represents a committed seat purchase
type TicketMintedEvent struct {
	TicketSerial int64     `json:"ticket_serial"`
	OccasionID   int64     `json:"occasion_id"`
	SeatNumber   int64     `json:"seat_number"`
	Buyer        string    `json:"buyer"`
	Price        int64     `json:"price"`
	Timestamp    time.Time `json:"timestamp"`
}

// FundsWithdrawnEvent represents a completed withdrawal
type FundsWithdrawnEvent struct {
	Recipient string    `json:"recipient"`
	Amount    int64     `json:"amount"`
	Reference string    `json:"reference"`
	Timestamp time.Time `json:"timestamp"`
}
