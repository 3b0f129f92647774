package repository

import (
	"context"
	"database/sql"

	"ticketchain/internal/database"
	"ticketchain/internal/models"
)

// OccasionArchiveRepository persists committed occasion listings. Rows carry
// the immutable fields only; the live remaining-ticket counter stays in the
// ledger.
type OccasionArchiveRepository struct {
	db *database.DB
}

func NewOccasionArchiveRepository(db *database.DB) *OccasionArchiveRepository {
	return &OccasionArchiveRepository{db: db}
}

func (r *OccasionArchiveRepository) Create(ctx context.Context, occ models.Occasion) error {
	query := `
		INSERT INTO occasions_archive (id, name, cost, max_tickets, occasion_date, occasion_time, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		occ.ID,
		occ.Name,
		occ.Cost,
		occ.MaxTickets,
		occ.Date,
		occ.Time,
		occ.Location,
	)
	return err
}

func (r *OccasionArchiveRepository) GetByID(ctx context.Context, id int64) (*models.Occasion, error) {
	occ := &models.Occasion{}
	query := `
		SELECT id, name, cost, max_tickets, occasion_date, occasion_time, location
		FROM occasions_archive
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&occ.ID,
		&occ.Name,
		&occ.Cost,
		&occ.MaxTickets,
		&occ.Date,
		&occ.Time,
		&occ.Location,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return occ, err
}

func (r *OccasionArchiveRepository) List(ctx context.Context) ([]models.Occasion, error) {
	query := `
		SELECT id, name, cost, max_tickets, occasion_date, occasion_time, location
		FROM occasions_archive
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var occasions []models.Occasion
	for rows.Next() {
		var occ models.Occasion
		err := rows.Scan(
			&occ.ID,
			&occ.Name,
			&occ.Cost,
			&occ.MaxTickets,
			&occ.Date,
			&occ.Time,
			&occ.Location,
		)
		if err != nil {
			return nil, err
		}
		occasions = append(occasions, occ)
	}

	return occasions, rows.Err()
}
