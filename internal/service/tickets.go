package service

import (
	"context"
	"fmt"
	"time"

	"ticketchain/internal/ledger"
	"ticketchain/internal/logger"
	"ticketchain/internal/models"
)

type TicketService struct {
	ledger *ledger.Ledger
	collab Collaborators
}

func NewTicketService(l *ledger.Ledger, collab Collaborators) *TicketService {
	return &TicketService{ledger: l, collab: collab}
}

// Mint sells a seat to the caller. The ledger transition is the commit
// point; archiving and event publication happen after it and cannot fail
// the sale.
func (s *TicketService) Mint(ctx context.Context, caller string, occasionID int64, req *models.MintRequest) (*models.MintResponse, error) {
	serial, err := s.ledger.Mint(caller, occasionID, req.SeatNumber, req.Payment)
	if err != nil {
		return nil, fmt.Errorf("failed to mint ticket: %w", err)
	}

	ticketsMinted.Inc()
	ledgerBalance.Set(float64(s.ledger.Balance()))

	if s.collab.Sales != nil {
		sale := models.SeatSale{
			TicketSerial: serial,
			OccasionID:   occasionID,
			SeatNumber:   req.SeatNumber,
			Buyer:        caller,
			Price:        req.Payment,
			SoldAt:       time.Now(),
		}
		if err := s.collab.Sales.RecordSale(ctx, sale); err != nil {
			logger.WithContext(ctx).Error("Failed to archive seat sale",
				"error", err,
				"ticket_serial", serial,
				"occasion_id", occasionID)
		}
	}

	if s.collab.Publisher != nil {
		event := models.TicketMintedEvent{
			TicketSerial: serial,
			OccasionID:   occasionID,
			SeatNumber:   req.SeatNumber,
			Buyer:        caller,
			Price:        req.Payment,
			Timestamp:    time.Now(),
		}
		if err := s.collab.Publisher.Publish(models.EventTicketMinted, event); err != nil {
			logger.WithContext(ctx).Error("Failed to publish ticket minted event",
				"error", err,
				"ticket_serial", serial,
				"event_type", models.EventTicketMinted)
		}
	}

	return &models.MintResponse{
		TicketSerial: serial,
		OccasionID:   occasionID,
		SeatNumber:   req.SeatNumber,
	}, nil
}

// SeatTaken reports who holds a seat. The occasion must exist.
func (s *TicketService) SeatTaken(ctx context.Context, occasionID, seat int64) (*models.SeatOwnerResponse, error) {
	if _, err := s.ledger.GetOccasion(occasionID); err != nil {
		return nil, err
	}

	buyer, taken := s.ledger.SeatTaken(occasionID, seat)
	return &models.SeatOwnerResponse{
		OccasionID: occasionID,
		SeatNumber: seat,
		Taken:      taken,
		Buyer:      buyer,
	}, nil
}

// SeatsTaken returns the sold seats of an occasion in purchase order.
func (s *TicketService) SeatsTaken(ctx context.Context, occasionID int64) (*models.SeatsTakenResponse, error) {
	if _, err := s.ledger.GetOccasion(occasionID); err != nil {
		return nil, err
	}

	return &models.SeatsTakenResponse{
		OccasionID: occasionID,
		Seats:      s.ledger.SeatsTaken(occasionID),
	}, nil
}

// HasBought reports whether the identity has bought into the occasion.
func (s *TicketService) HasBought(ctx context.Context, occasionID int64, identity string) (*models.HasBoughtResponse, error) {
	if _, err := s.ledger.GetOccasion(occasionID); err != nil {
		return nil, err
	}

	return &models.HasBoughtResponse{
		OccasionID: occasionID,
		Identity:   identity,
		HasBought:  s.ledger.HasBought(occasionID, identity),
	}, nil
}
