package service

import (
	"context"
	"fmt"
	"time"

	"ticketchain/internal/errors"
	"ticketchain/internal/ledger"
	"ticketchain/internal/logger"
	"ticketchain/internal/models"

	"github.com/google/uuid"
)

type WithdrawalService struct {
	ledger *ledger.Ledger
	collab Collaborators
	sink   ledger.FundSink
}

func NewWithdrawalService(l *ledger.Ledger, collab Collaborators, sink ledger.FundSink) *WithdrawalService {
	return &WithdrawalService{ledger: l, collab: collab, sink: sink}
}

// Withdraw drains the aggregate balance to the administrator. The transfer
// through the fund sink is part of the transition: if the sink rejects it,
// the balance stays put and the caller sees ErrTransferFailed.
func (s *WithdrawalService) Withdraw(ctx context.Context, caller string) (*models.WithdrawResponse, error) {
	amount, err := s.ledger.Withdraw(ctx, caller, s.sink)
	if err != nil {
		return nil, fmt.Errorf("failed to withdraw: %w", err)
	}

	withdrawalsTotal.Inc()
	ledgerBalance.Set(float64(s.ledger.Balance()))

	reference := uuid.New().String()

	if s.collab.Sales != nil {
		record := models.Withdrawal{
			Recipient: s.ledger.Admin(),
			Amount:    amount,
			Reference: reference,
		}
		if err := s.collab.Sales.RecordWithdrawal(ctx, record); err != nil {
			logger.WithContext(ctx).Error("Failed to archive withdrawal",
				"error", err,
				"reference", reference)
		}
	}

	if s.collab.Publisher != nil {
		event := models.FundsWithdrawnEvent{
			Recipient: s.ledger.Admin(),
			Amount:    amount,
			Reference: reference,
			Timestamp: time.Now(),
		}
		if err := s.collab.Publisher.Publish(models.EventFundsWithdrawn, event); err != nil {
			logger.WithContext(ctx).Error("Failed to publish funds withdrawn event",
				"error", err,
				"reference", reference,
				"event_type", models.EventFundsWithdrawn)
		}
	}

	return &models.WithdrawResponse{
		Amount:    amount,
		Recipient: s.ledger.Admin(),
		Reference: reference,
	}, nil
}

// Balance returns the current aggregate balance. Admin only.
func (s *WithdrawalService) Balance(ctx context.Context, caller string) (*models.BalanceResponse, error) {
	if caller != s.ledger.Admin() {
		return nil, fmt.Errorf("read balance: %w", errors.ErrUnauthorized)
	}
	return &models.BalanceResponse{Balance: s.ledger.Balance()}, nil
}
