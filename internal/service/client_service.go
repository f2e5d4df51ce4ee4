package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"client-retention-be/internal/dto"
	"client-retention-be/internal/entity"
	"client-retention-be/internal/mapper"
	"client-retention-be/internal/repository/specification"
	"client-retention-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IClientService is the subscription ledger: it owns each client's
// subscription status and billing anchor, and applies the transitions
// triggered by cancellation decisions.
type IClientService interface {
	CreateClient(ctx context.Context, userId uuid.UUID, req *dto.CreateClientRequest) (*dto.ClientResponse, error)
	ListClients(ctx context.Context, userId uuid.UUID) ([]dto.ClientResponse, error)
	RecordCancellationDecision(ctx context.Context, userId uuid.UUID, req *dto.RecordCancellationRequest) (*dto.CancellationDecisionResponse, error)
}

type clientService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewClientService(uowFactory unitofwork.RepositoryFactory) IClientService {
	return &clientService{
		uowFactory: uowFactory,
	}
}

func (s *clientService) CreateClient(ctx context.Context, userId uuid.UUID, req *dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.DiscountRate < 0 || req.DiscountRate > 100 {
		return nil, fmt.Errorf("%w: discount rate must be between 0 and 100", ErrValidation)
	}

	now := time.Now()
	client := &entity.Client{
		Id:                    uuid.New(),
		UserId:                userId,
		Name:                  req.Name,
		DiscountRate:          req.DiscountRate,
		Status:                entity.SubscriptionStatusActive,
		SubscriptionStartDate: now,
		NextBillingDate:       now.AddDate(0, entity.BillingPeriodMonths, 0),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ClientRepository().Create(ctx, client); err != nil {
		return nil, err
	}

	response := mapper.ToClientResponse(client)
	return &response, nil
}

func (s *clientService) ListClients(ctx context.Context, userId uuid.UUID) ([]dto.ClientResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	clients, err := uow.ClientRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	return mapper.ToClientResponseList(clients), nil
}

// RecordCancellationDecision applies one cancellation attempt to a client:
//
//   - accepted: the client stays active and the billing anchor resets to one
//     period from now, even if the client was never cancelled ("renewed on
//     the spot").
//   - declined: the client goes to cancelled and the billing anchor is left
//     frozen, since no further billing should occur.
//
// The status transition and the event append run in one transaction, so a
// reader can never observe a client whose status disagrees with its latest
// event. Retried calls are not deduplicated; callers own idempotence.
func (s *clientService) RecordCancellationDecision(ctx context.Context, userId uuid.UUID, req *dto.RecordCancellationRequest) (*dto.CancellationDecisionResponse, error) {
	if strings.TrimSpace(req.ActorLabel) == "" {
		return nil, fmt.Errorf("%w: actor label is required", ErrValidation)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// Ownership check is part of the lookup: a client belonging to another
	// account is indistinguishable from a missing one.
	client, err := uow.ClientRepository().FindOne(ctx,
		specification.ByID{ID: req.ClientId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	now := time.Now()
	if req.Accepted {
		client.Status = entity.SubscriptionStatusActive
		client.NextBillingDate = now.AddDate(0, entity.BillingPeriodMonths, 0)
	} else {
		client.Status = entity.SubscriptionStatusCancelled
	}
	client.UpdatedAt = now

	if err := uow.ClientRepository().Update(ctx, client); err != nil {
		return nil, err
	}

	event := &entity.Cancellation{
		Id:              uuid.New(),
		ClientId:        client.Id,
		ActorLabel:      req.ActorLabel,
		DiscountOffered: req.DiscountOffered,
		Accepted:        req.Accepted,
		Reason:          req.Reason,
		Feedback:        req.Feedback,
		CreatedAt:       now,
	}

	if err := uow.CancellationRepository().Create(ctx, event); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CancellationDecisionResponse{
		Client: mapper.ToClientResponse(client),
		Event:  mapper.ToCancellationEventResponse(event),
	}, nil
}
