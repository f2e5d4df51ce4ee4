package implementation

import (
	"context"

	"client-retention-be/internal/entity"
	"client-retention-be/internal/model"
	"client-retention-be/internal/repository/contract"
	"client-retention-be/internal/repository/specification"

	"gorm.io/gorm"
)

type userRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	modelUser := &model.User{
		Id:           user.Id,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		FullName:     user.FullName,
	}
	return r.db.WithContext(ctx).Create(modelUser).Error
}

func (r *userRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.Id).
		Updates(map[string]interface{}{
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"full_name":     user.FullName,
		}).Error
}

func (r *userRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var modelUser model.User
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelUser).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelUser), nil
}

func (r *userRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.User{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *userRepositoryImpl) CreateProvider(ctx context.Context, provider *entity.UserProvider) error {
	modelProvider := &model.UserProvider{
		Id:             provider.Id,
		UserId:         provider.UserId,
		ProviderName:   provider.ProviderName,
		ProviderUserId: provider.ProviderUserId,
	}
	return r.db.WithContext(ctx).Create(modelProvider).Error
}

func (r *userRepositoryImpl) FindProvider(ctx context.Context, providerName, providerUserId string) (*entity.UserProvider, error) {
	var modelProvider model.UserProvider
	err := r.db.WithContext(ctx).
		Where("provider_name = ? AND provider_user_id = ?", providerName, providerUserId).
		First(&modelProvider).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &entity.UserProvider{
		Id:             modelProvider.Id,
		UserId:         modelProvider.UserId,
		ProviderName:   modelProvider.ProviderName,
		ProviderUserId: modelProvider.ProviderUserId,
		CreatedAt:      modelProvider.CreatedAt,
	}, nil
}

func (r *userRepositoryImpl) mapToEntity(mu *model.User) *entity.User {
	return &entity.User{
		Id:           mu.Id,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		FullName:     mu.FullName,
		CreatedAt:    mu.CreatedAt,
		UpdatedAt:    mu.UpdatedAt,
	}
}
