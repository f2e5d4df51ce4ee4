package contract

import (
	"context"

	"client-retention-be/internal/entity"
	"client-retention-be/internal/repository/specification"
)

// CancellationRepository defines storage operations for cancellation events.
// The interface is append-and-read only: events form an immutable audit trail,
// so no Update or Delete exists here.
type CancellationRepository interface {
	Create(ctx context.Context, cancellation *entity.Cancellation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Cancellation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Cancellation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
