package service

import (
	"context"
	"strings"

	"client-retention-be/internal/dto"
	"client-retention-be/internal/entity"
	"client-retention-be/internal/repository/specification"
	"client-retention-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// IAnalyticsService derives retention metrics per client from the full
// cancellation event history. Reads only; every call recomputes from the
// stored events, there is no materialized state to go stale.
type IAnalyticsService interface {
	RetentionSummary(ctx context.Context, userId uuid.UUID) ([]dto.ClientRetentionSummaryResponse, error)
}

type analyticsService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAnalyticsService(uowFactory unitofwork.RepositoryFactory) IAnalyticsService {
	return &analyticsService{
		uowFactory: uowFactory,
	}
}

// RetentionSummary returns one row per owned client, including clients with
// no events yet (left-join semantics, zero counts).
func (s *analyticsService) RetentionSummary(ctx context.Context, userId uuid.UUID) ([]dto.ClientRetentionSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	clients, err := uow.ClientRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ClientRetentionSummaryResponse, 0, len(clients))
	if len(clients) == 0 {
		return result, nil
	}

	clientIds := lo.Map(clients, func(c *entity.Client, _ int) uuid.UUID { return c.Id })

	events, err := uow.CancellationRepository().FindAll(ctx,
		specification.ByClientIDs{ClientIDs: clientIds},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	eventsByClient := lo.GroupBy(events, func(ev *entity.Cancellation) uuid.UUID { return ev.ClientId })

	for _, client := range clients {
		result = append(result, s.summarize(client, eventsByClient[client.Id]))
	}

	return result, nil
}

func (s *analyticsService) summarize(client *entity.Client, events []*entity.Cancellation) dto.ClientRetentionSummaryResponse {
	total := len(events)
	acceptedCount := lo.CountBy(events, func(ev *entity.Cancellation) bool { return ev.Accepted })

	// Accepted events contribute the client's current discount rate to the
	// numerator, declined ones contribute 0, and the denominator is ALL
	// events. The result is a weighted retention-discount indicator, not an
	// average over accepted events only.
	var avgDiscount float64
	if total > 0 {
		avgDiscount = decimal.NewFromInt(int64(acceptedCount * client.DiscountRate)).
			Div(decimal.NewFromInt(int64(total))).
			Round(2).
			InexactFloat64()
	}

	reasons := lo.FilterMap(events, func(ev *entity.Cancellation, _ int) (string, bool) {
		return ev.Reason, strings.TrimSpace(ev.Reason) != ""
	})

	return dto.ClientRetentionSummaryResponse{
		ClientId:             client.Id,
		Name:                 client.Name,
		CurrentStatus:        string(client.Status),
		TotalCancellations:   total,
		AcceptedOffers:       acceptedCount,
		AvgRetentionDiscount: avgDiscount,
		CommonReasons:        strings.Join(lo.Uniq(reasons), ", "),
	}
}
