package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/vintry/internal/ports/secondary"
)

// UnitOfWork implements secondary.UnitOfWork over a *sql.DB.
type UnitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork creates a SQLite unit of work.
func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// InTx runs fn against transaction-bound repositories. The transaction
// commits only when fn returns nil; any error rolls everything back.
func (u *UnitOfWork) InTx(ctx context.Context, fn func(ctx context.Context, stores secondary.TxStores) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, newTxStores(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type txStores struct {
	allocations *AllocationRepository
	wines       *WineRepository
	slots       *SlotRepository
	reconfigs   *ReconfigurationRepository
	counters    *ChangeCounterRepository
}

func newTxStores(tx *sql.Tx) *txStores {
	return &txStores{
		allocations: NewAllocationRepository(tx),
		wines:       NewWineRepository(tx),
		slots:       NewSlotRepository(tx),
		reconfigs:   NewReconfigurationRepository(tx),
		counters:    NewChangeCounterRepository(tx),
	}
}

func (s *txStores) Allocations() secondary.AllocationRepository { return s.allocations }
func (s *txStores) Wines() secondary.WineRepository             { return s.wines }
func (s *txStores) Slots() secondary.SlotRepository             { return s.slots }
func (s *txStores) Reconfigurations() secondary.ReconfigurationRepository {
	return s.reconfigs
}
func (s *txStores) Counters() secondary.ChangeCounterRepository { return s.counters }
