package models

import "time"

// Occasion represents one listed event with a fixed seat inventory.
// Text fields are stored and returned verbatim; the ledger never
// interprets them.
type Occasion struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Cost       int64  `json:"cost" db:"cost"`
	Tickets    int64  `json:"tickets" db:"tickets_remaining"`
	MaxTickets int64  `json:"max_tickets" db:"max_tickets"`
	Date       string `json:"date" db:"occasion_date"`
	Time       string `json:"time" db:"occasion_time"`
	Location   string `json:"location" db:"location"`
}

// SeatSale is the archive record of one committed seat purchase.
type SeatSale struct {
	TicketSerial int64     `json:"ticket_serial" db:"ticket_serial"`
	OccasionID   int64     `json:"occasion_id" db:"occasion_id"`
	SeatNumber   int64     `json:"seat_number" db:"seat_number"`
	Buyer        string    `json:"buyer" db:"buyer"`
	Price        int64     `json:"price" db:"price"`
	SoldAt       time.Time `json:"sold_at" db:"sold_at"`
}

// Withdrawal is the archive record of one completed fund withdrawal.
type Withdrawal struct {
	ID        int64     `json:"id" db:"id"`
	Recipient string    `json:"recipient" db:"recipient"`
	Amount    int64     `json:"amount" db:"amount"`
	Reference string    `json:"reference" db:"reference"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
