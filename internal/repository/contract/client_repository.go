package contract

import (
	"context"

	"client-retention-be/internal/entity"
	"client-retention-be/internal/repository/specification"
)

// ClientRepository defines storage operations for billable clients.
// Clients are never deleted in this domain, only transitioned.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	Update(ctx context.Context, client *entity.Client) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Client, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Client, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
