package repository

import (
	"context"

	"ticketchain/internal/database"
	"ticketchain/internal/models"
)

// SaleArchiveRepository persists committed seat sales and withdrawals.
type SaleArchiveRepository struct {
	db *database.DB
}

func NewSaleArchiveRepository(db *database.DB) *SaleArchiveRepository {
	return &SaleArchiveRepository{db: db}
}

func (r *SaleArchiveRepository) RecordSale(ctx context.Context, sale models.SeatSale) error {
	query := `
		INSERT INTO seat_sales (ticket_serial, occasion_id, seat_number, buyer, price, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (ticket_serial) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		sale.TicketSerial,
		sale.OccasionID,
		sale.SeatNumber,
		sale.Buyer,
		sale.Price,
		sale.SoldAt,
	)
	return err
}

func (r *SaleArchiveRepository) ListByOccasion(ctx context.Context, occasionID int64) ([]models.SeatSale, error) {
	query := `
		SELECT ticket_serial, occasion_id, seat_number, buyer, price, sold_at
		FROM seat_sales
		WHERE occasion_id = $1
		ORDER BY ticket_serial ASC`

	rows, err := r.db.QueryContext(ctx, query, occasionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []models.SeatSale
	for rows.Next() {
		var sale models.SeatSale
		err := rows.Scan(
			&sale.TicketSerial,
			&sale.OccasionID,
			&sale.SeatNumber,
			&sale.Buyer,
			&sale.Price,
			&sale.SoldAt,
		)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}

	return sales, rows.Err()
}

func (r *SaleArchiveRepository) RecordWithdrawal(ctx context.Context, w models.Withdrawal) error {
	query := `
		INSERT INTO withdrawals (recipient, amount, reference)
		VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query, w.Recipient, w.Amount, w.Reference)
	return err
}
