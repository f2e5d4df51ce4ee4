package implementation

import (
	"context"

	"client-retention-be/internal/entity"
	"client-retention-be/internal/model"
	"client-retention-be/internal/repository/contract"
	"client-retention-be/internal/repository/specification"

	"gorm.io/gorm"
)

type clientRepositoryImpl struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) contract.ClientRepository {
	return &clientRepositoryImpl{db: db}
}

func (r *clientRepositoryImpl) Create(ctx context.Context, client *entity.Client) error {
	modelClient := &model.Client{
		Id:                    client.Id,
		UserId:                client.UserId,
		Name:                  client.Name,
		DiscountRate:          client.DiscountRate,
		Status:                string(client.Status),
		SubscriptionStartDate: client.SubscriptionStartDate,
		NextBillingDate:       client.NextBillingDate,
	}
	return r.db.WithContext(ctx).Create(modelClient).Error
}

// Update persists the mutable fields of a client. SubscriptionStartDate is
// immutable after creation and deliberately not part of the update set.
func (r *clientRepositoryImpl) Update(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Model(&model.Client{}).
		Where("id = ?", client.Id).
		Updates(map[string]interface{}{
			"name":              client.Name,
			"discount_rate":     client.DiscountRate,
			"status":            string(client.Status),
			"next_billing_date": client.NextBillingDate,
		}).Error
}

func (r *clientRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Client, error) {
	var modelClient model.Client
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelClient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelClient), nil
}

func (r *clientRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Client, error) {
	var modelClients []*model.Client
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelClients).Error; err != nil {
		return nil, err
	}

	var clients []*entity.Client
	for _, mc := range modelClients {
		clients = append(clients, r.mapToEntity(mc))
	}

	return clients, nil
}

func (r *clientRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Client{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *clientRepositoryImpl) mapToEntity(mc *model.Client) *entity.Client {
	return &entity.Client{
		Id:                    mc.Id,
		UserId:                mc.UserId,
		Name:                  mc.Name,
		DiscountRate:          mc.DiscountRate,
		Status:                entity.SubscriptionStatus(mc.Status),
		SubscriptionStartDate: mc.SubscriptionStartDate,
		NextBillingDate:       mc.NextBillingDate,
		CreatedAt:             mc.CreatedAt,
		UpdatedAt:             mc.UpdatedAt,
	}
}
