package secondary

import "context"

// TxStores bundles the repositories bound to one open transaction. Apply,
// undo, and move execution each run entirely inside a single transaction.
type TxStores interface {
	Allocations() AllocationRepository
	Wines() WineRepository
	Slots() SlotRepository
	Reconfigurations() ReconfigurationRepository
	Counters() ChangeCounterRepository
}

// UnitOfWork opens a transaction, runs fn against transaction-bound
// stores, and commits; any error from fn rolls the whole transaction
// back. No partial state is ever committed.
type UnitOfWork interface {
	InTx(ctx context.Context, fn func(ctx context.Context, stores TxStores) error) error
}
