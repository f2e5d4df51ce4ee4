package contract

import (
	"context"

	"client-retention-be/internal/entity"
	"client-retention-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// OAuth provider links
	CreateProvider(ctx context.Context, provider *entity.UserProvider) error
	FindProvider(ctx context.Context, providerName, providerUserId string) (*entity.UserProvider, error)
}
