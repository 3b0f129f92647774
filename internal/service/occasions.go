package service

import (
	"context"
	"fmt"
	"time"

	"ticketchain/internal/ledger"
	"ticketchain/internal/logger"
	"ticketchain/internal/models"
)

type OccasionService struct {
	ledger *ledger.Ledger
	collab Collaborators
}

func NewOccasionService(l *ledger.Ledger, collab Collaborators) *OccasionService {
	return &OccasionService{ledger: l, collab: collab}
}

// Create lists a new occasion on behalf of the caller and fans the
// committed record out to the archive, the search index and the event bus.
func (s *OccasionService) Create(ctx context.Context, caller string, req *models.CreateOccasionRequest) (*models.CreateOccasionResponse, error) {
	id, err := s.ledger.List(caller, req.Name, req.Cost, req.MaxTickets, req.Date, req.Time, req.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to list occasion: %w", err)
	}

	occasionsListed.Inc()

	occ, err := s.ledger.GetOccasion(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read back occasion: %w", err)
	}

	if s.collab.Occasions != nil {
		if err := s.collab.Occasions.Create(ctx, occ); err != nil {
			logger.WithContext(ctx).Error("Failed to archive occasion",
				"error", err,
				"occasion_id", id)
		}
	}

	if s.collab.Search != nil {
		if err := s.collab.Search.IndexOccasion(ctx, occ); err != nil {
			logger.WithContext(ctx).Error("Failed to index occasion",
				"error", err,
				"occasion_id", id)
		}
	}

	if s.collab.Cache != nil {
		if err := s.collab.Cache.InvalidateOccasionsList(ctx); err != nil {
			logger.WithContext(ctx).Error("Failed to invalidate occasions cache",
				"error", err)
		}
	}

	if s.collab.Publisher != nil {
		event := models.OccasionListedEvent{
			OccasionID: id,
			Name:       occ.Name,
			Cost:       occ.Cost,
			MaxTickets: occ.MaxTickets,
			Timestamp:  time.Now(),
		}
		if err := s.collab.Publisher.Publish(models.EventOccasionListed, event); err != nil {
			logger.WithContext(ctx).Error("Failed to publish occasion listed event",
				"error", err,
				"occasion_id", id,
				"event_type", models.EventOccasionListed)
		}
	}

	return &models.CreateOccasionResponse{ID: id}, nil
}

// List returns the current occasion table. With a non-empty query and a
// configured search index the listing is narrowed to matching occasions;
// live ticket counts always come from the ledger.
func (s *OccasionService) List(ctx context.Context, query string) (models.ListOccasionsResponse, error) {
	if query != "" && s.collab.Search != nil {
		ids, err := s.collab.Search.Search(ctx, query, 20)
		if err != nil {
			return nil, fmt.Errorf("failed to search occasions: %w", err)
		}

		result := make(models.ListOccasionsResponse, 0, len(ids))
		for _, id := range ids {
			occ, err := s.ledger.GetOccasion(id)
			if err != nil {
				// Index lag; skip ids the ledger does not know.
				continue
			}
			result = append(result, occ)
		}
		return result, nil
	}

	total := s.ledger.TotalOccasions()
	result := make(models.ListOccasionsResponse, 0, total)
	for id := int64(1); id <= total; id++ {
		occ, err := s.ledger.GetOccasion(id)
		if err != nil {
			return nil, fmt.Errorf("failed to get occasion %d: %w", id, err)
		}
		result = append(result, occ)
	}
	return result, nil
}

// Get returns one occasion.
func (s *OccasionService) Get(ctx context.Context, id int64) (models.Occasion, error) {
	return s.ledger.GetOccasion(id)
}

// Info returns the ledger metadata and counters.
func (s *OccasionService) Info(ctx context.Context) models.InfoResponse {
	return models.InfoResponse{
		Name:           s.ledger.Name(),
		Symbol:         s.ledger.Symbol(),
		Admin:          s.ledger.Admin(),
		TotalOccasions: s.ledger.TotalOccasions(),
		TotalSupply:    s.ledger.TotalSupply(),
	}
}
