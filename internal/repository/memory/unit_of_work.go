package memory

import (
	"context"
	"fmt"

	"client-retention-be/internal/repository/contract"
	"client-retention-be/internal/repository/unitofwork"
)

// Factory hands out memory-backed units of work sharing one Store.
type Factory struct {
	store *Store
}

func NewFactory(store *Store) *Factory {
	return &Factory{store: store}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

// unitOfWork buffers writes while a transaction is open and applies them on
// Commit. Reads always observe committed state only, mirroring the
// read-committed isolation the relational store provides.
type unitOfWork struct {
	store   *Store
	pending []func(*Store)
	inTx    bool
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.inTx {
		return fmt.Errorf("transaction already started")
	}
	u.inTx = true
	return nil
}

func (u *unitOfWork) Commit() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	u.store.mu.Lock()
	for _, apply := range u.pending {
		apply(u.store)
	}
	u.store.mu.Unlock()
	u.pending = nil
	u.inTx = false
	return nil
}

func (u *unitOfWork) Rollback() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to rollback")
	}
	u.pending = nil
	u.inTx = false
	return nil
}

// enqueue applies a write immediately outside a transaction, or defers it
// until Commit inside one.
func (u *unitOfWork) enqueue(apply func(*Store)) {
	if !u.inTx {
		u.store.mu.Lock()
		apply(u.store)
		u.store.mu.Unlock()
		return
	}
	u.pending = append(u.pending, apply)
}

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return &userRepository{uow: u}
}

func (u *unitOfWork) ClientRepository() contract.ClientRepository {
	return &clientRepository{uow: u}
}

func (u *unitOfWork) CancellationRepository() contract.CancellationRepository {
	return &cancellationRepository{uow: u}
}
