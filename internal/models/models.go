package models

// CreateOccasionRequest - модель для создания события
type CreateOccasionRequest struct {
	Name       string `json:"name" binding:"required"`
	Cost       int64  `json:"cost"`
	MaxTickets int64  `json:"max_tickets"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Location   string `json:"location"`
}

// CreateOccasionResponse - модель ответа при создании события
type CreateOccasionResponse struct {
	ID int64 `json:"id"`
}

// ListOccasionsResponse - список событий
type ListOccasionsResponse []Occasion

// MintRequest - модель для покупки места. Payment приходит от внешнего
// коллаборатора вместе с аутентифицированной личностью покупателя.
type MintRequest struct {
	SeatNumber int64 `json:"seat_number" binding:"required"`
	Payment    int64 `json:"payment"`
}

// MintResponse - модель ответа при покупке места
type MintResponse struct {
	TicketSerial int64 `json:"ticket_serial"`
	OccasionID   int64 `json:"occasion_id"`
	SeatNumber   int64 `json:"seat_number"`
}

// SeatOwnerResponse - владелец конкретного места
type SeatOwnerResponse struct {
	OccasionID int64  `json:"occasion_id"`
	SeatNumber int64  `json:"seat_number"`
	Taken      bool   `json:"taken"`
	Buyer      string `json:"buyer,omitempty"`
}

// SeatsTakenResponse - проданные места события в порядке покупки
type SeatsTakenResponse struct {
	OccasionID int64   `json:"occasion_id"`
	Seats      []int64 `json:"seats"`
}

// HasBoughtResponse - покупал ли идентификатор билет на событие
type HasBoughtResponse struct {
	OccasionID int64  `json:"occasion_id"`
	Identity   string `json:"identity"`
	HasBought  bool   `json:"has_bought"`
}

// WithdrawResponse - модель ответа при выводе средств
type WithdrawResponse struct {
	Amount    int64  `json:"amount"`
	Recipient string `json:"recipient"`
	Reference string `json:"reference"`
}

// BalanceResponse - текущий накопленный баланс
type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

// InfoResponse - метаданные леджера
type InfoResponse struct {
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	Admin          string `json:"admin"`
	TotalOccasions int64  `json:"total_occasions"`
	TotalSupply    int64  `json:"total_supply"`
}
