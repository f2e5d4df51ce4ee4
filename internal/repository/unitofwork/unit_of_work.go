package unitofwork

import (
	"context"

	"client-retention-be/internal/repository/contract"
)

// UnitOfWork binds repositories to a single database transaction. The ledger
// relies on it so a status transition and its event append commit or roll
// back together.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ClientRepository() contract.ClientRepository
	CancellationRepository() contract.CancellationRepository
}
