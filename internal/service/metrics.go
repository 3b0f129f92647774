package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketsMinted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketchain_tickets_minted_total",
		Help: "Number of tickets sold across all occasions",
	})

	occasionsListed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketchain_occasions_listed_total",
		Help: "Number of occasions ever listed",
	})

	ledgerBalance = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ticketchain_ledger_balance",
		Help: "Current aggregate ledger balance in smallest currency units",
	})

	withdrawalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketchain_withdrawals_total",
		Help: "Number of completed withdrawals",
	})
)
