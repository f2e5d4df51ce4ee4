package implementation

import (
	"context"

	"client-retention-be/internal/entity"
	"client-retention-be/internal/model"
	"client-retention-be/internal/repository/contract"
	"client-retention-be/internal/repository/specification"

	"gorm.io/gorm"
)

type cancellationRepositoryImpl struct {
	db *gorm.DB
}

// NewCancellationRepository creates a new cancellation event repository
func NewCancellationRepository(db *gorm.DB) contract.CancellationRepository {
	return &cancellationRepositoryImpl{db: db}
}

func (r *cancellationRepositoryImpl) Create(ctx context.Context, cancellation *entity.Cancellation) error {
	modelCancellation := &model.Cancellation{
		Id:              cancellation.Id,
		ClientId:        cancellation.ClientId,
		ActorLabel:      cancellation.ActorLabel,
		DiscountOffered: cancellation.DiscountOffered,
		Accepted:        cancellation.Accepted,
		Reason:          cancellation.Reason,
		Feedback:        cancellation.Feedback,
	}
	return r.db.WithContext(ctx).Create(modelCancellation).Error
}

func (r *cancellationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Cancellation, error) {
	var modelCancellation model.Cancellation
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelCancellation).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelCancellation), nil
}

func (r *cancellationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Cancellation, error) {
	var modelCancellations []*model.Cancellation
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelCancellations).Error; err != nil {
		return nil, err
	}

	var cancellations []*entity.Cancellation
	for _, mc := range modelCancellations {
		cancellations = append(cancellations, r.mapToEntity(mc))
	}

	return cancellations, nil
}

func (r *cancellationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Cancellation{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *cancellationRepositoryImpl) mapToEntity(mc *model.Cancellation) *entity.Cancellation {
	return &entity.Cancellation{
		Id:              mc.Id,
		ClientId:        mc.ClientId,
		ActorLabel:      mc.ActorLabel,
		DiscountOffered: mc.DiscountOffered,
		Accepted:        mc.Accepted,
		Reason:          mc.Reason,
		Feedback:        mc.Feedback,
		CreatedAt:       mc.CreatedAt,
	}
}
