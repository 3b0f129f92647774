package repository

import (
	"ticketchain/internal/database"
)

type Repositories struct {
	Occasions *OccasionArchiveRepository
	Sales     *SaleArchiveRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Occasions: NewOccasionArchiveRepository(db),
		Sales:     NewSaleArchiveRepository(db),
	}
}
