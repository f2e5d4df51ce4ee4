package service

import (
	"context"
	"testing"
	"time"

	"client-retention-be/internal/dto"
	"client-retention-be/internal/entity"
	"client-retention-be/internal/repository/memory"
	"client-retention-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger() (IClientService, *memory.Factory) {
	factory := memory.NewFactory(memory.NewStore())
	return NewClientService(factory), factory
}

func TestCreateClient(t *testing.T) {
	svc, _ := newTestLedger()
	ownerId := uuid.New()

	res, err := svc.CreateClient(context.Background(), ownerId, &dto.CreateClientRequest{
		Name:         "Acme Corp",
		DiscountRate: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", res.Name)
	assert.Equal(t, 20, res.DiscountRate)
	assert.Equal(t, string(entity.SubscriptionStatusActive), res.Status)

	// Billing anchor starts one period out from signup.
	wantBilling := res.SubscriptionStartDate.AddDate(0, entity.BillingPeriodMonths, 0)
	assert.Equal(t, wantBilling, res.NextBillingDate)
}

func TestCreateClientValidation(t *testing.T) {
	svc, _ := newTestLedger()
	ownerId := uuid.New()

	tests := []struct {
		name string
		req  dto.CreateClientRequest
	}{
		{name: "empty name", req: dto.CreateClientRequest{Name: "   ", DiscountRate: 10}},
		{name: "negative discount", req: dto.CreateClientRequest{Name: "Acme", DiscountRate: -1}},
		{name: "discount over 100", req: dto.CreateClientRequest{Name: "Acme", DiscountRate: 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateClient(context.Background(), ownerId, &tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestListClientsScopedToOwner(t *testing.T) {
	svc, _ := newTestLedger()
	owner := uuid.New()
	other := uuid.New()

	_, err := svc.CreateClient(context.Background(), owner, &dto.CreateClientRequest{Name: "Mine", DiscountRate: 5})
	require.NoError(t, err)
	_, err = svc.CreateClient(context.Background(), other, &dto.CreateClientRequest{Name: "Theirs", DiscountRate: 5})
	require.NoError(t, err)

	list, err := svc.ListClients(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mine", list[0].Name)
}

func TestRecordCancellationDeclined(t *testing.T) {
	svc, _ := newTestLedger()
	owner := uuid.New()

	created, err := svc.CreateClient(context.Background(), owner, &dto.CreateClientRequest{Name: "Acme", DiscountRate: 20})
	require.NoError(t, err)
	billingBefore := created.NextBillingDate

	res, err := svc.RecordCancellationDecision(context.Background(), owner, &dto.RecordCancellationRequest{
		ClientId:        created.Id,
		ActorLabel:      "owner:demo",
		DiscountOffered: true,
		Accepted:        false,
		Reason:          "Too expensive",
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.SubscriptionStatusCancelled), res.Client.Status)
	// Declined decisions freeze the billing anchor.
	assert.Equal(t, billingBefore, res.Client.NextBillingDate)

	assert.Equal(t, created.Id, res.Event.ClientId)
	assert.False(t, res.Event.Accepted)
	assert.Equal(t, "owner:demo", res.Event.ActorLabel)
}

func TestRecordCancellationAccepted(t *testing.T) {
	svc, _ := newTestLedger()
	owner := uuid.New()

	created, err := svc.CreateClient(context.Background(), owner, &dto.CreateClientRequest{Name: "Acme", DiscountRate: 20})
	require.NoError(t, err)

	// Cancel first so the accept path is a real recovery.
	_, err = svc.RecordCancellationDecision(context.Background(), owner, &dto.RecordCancellationRequest{
		ClientId:   created.Id,
		ActorLabel: "owner:demo",
		Accepted:   false,
	})
	require.NoError(t, err)

	before := time.Now()
	res, err := svc.RecordCancellationDecision(context.Background(), owner, &dto.RecordCancellationRequest{
		ClientId:        created.Id,
		ActorLabel:      "owner:demo",
		DiscountOffered: true,
		Accepted:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.SubscriptionStatusActive), res.Client.Status)

	// Accepting resets the anchor to one period from the decision.
	wantMin := before.AddDate(0, entity.BillingPeriodMonths, 0)
	assert.False(t, res.Client.NextBillingDate.Before(wantMin))
}

func TestRecordCancellationAppendsEvents(t *testing.T) {
	svc, factory := newTestLedger()
	owner := uuid.New()

	created, err := svc.CreateClient(context.Background(), owner, &dto.CreateClientRequest{Name: "Acme", DiscountRate: 20})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.RecordCancellationDecision(context.Background(), owner, &dto.RecordCancellationRequest{
			ClientId:   created.Id,
			ActorLabel: "owner:demo",
			Accepted:   i%2 == 0,
		})
		require.NoError(t, err)
	}

	uow := factory.NewUnitOfWork(context.Background())
	events, err := uow.CancellationRepository().FindAll(context.Background(),
		specification.ByClientID{ClientID: created.Id},
	)
	require.NoError(t, err)
	// Repeated decisions accumulate, nothing is overwritten.
	assert.Len(t, events, 3)
}

func TestRecordCancellationStatusMatchesLatestEvent(t *testing.T) {
	svc, factory := newTestLedger()
	owner := uuid.New()

	created, err := svc.CreateClient(context.Background(), owner, &dto.CreateClientRequest{Name: "Acme", DiscountRate: 20})
	require.NoError(t, err)

	decisions := []bool{false, true, true, false}
	for _, accepted := range decisions {
		_, err = svc.RecordCancellationDecision(context.Background(), owner, &dto.RecordCancellationRequest{
			ClientId:   created.Id,
			ActorLabel: "owner:demo",
			Accepted:   accepted,
		})
		require.NoError(t, err)
	}

	uow := factory.NewUnitOfWork(context.Background())
	client, err := uow.ClientRepository().FindOne(context.Background(), specification.ByID{ID: created.Id})
	require.NoError(t, err)
	require.NotNil(t, client)

	events, err := uow.CancellationRepository().FindAll(context.Background(),
		specification.ByClientID{ClientID: created.Id},
		specification.OrderBy{Field: "created_at"},
	)
	require.NoError(t, err)
	require.Len(t, events, len(decisions))

	latest := events[len(events)-1]
	if latest.Accepted {
		assert.Equal(t, entity.SubscriptionStatusActive, client.Status)
	} else {
		assert.Equal(t, entity.SubscriptionStatusCancelled, client.Status)
	}
}

func TestRecordCancellationWrongOwner(t *testing.T) {
	svc, factory := newTestLedger()
	owner := uuid.New()
	stranger := uuid.New()

	created, err := svc.CreateClient(context.Background(), owner, &dto.CreateClientRequest{Name: "Acme", DiscountRate: 20})
	require.NoError(t, err)

	_, err = svc.RecordCancellationDecision(context.Background(), stranger, &dto.RecordCancellationRequest{
		ClientId:   created.Id,
		ActorLabel: "owner:stranger",
		Accepted:   false,
	})
	assert.ErrorIs(t, err, ErrClientNotFound)

	// The failed attempt must leave no trace: status unchanged, no event.
	uow := factory.NewUnitOfWork(context.Background())
	client, err := uow.ClientRepository().FindOne(context.Background(), specification.ByID{ID: created.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusActive, client.Status)

	events, err := uow.CancellationRepository().FindAll(context.Background(),
		specification.ByClientID{ClientID: created.Id},
	)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRecordCancellationUnknownClient(t *testing.T) {
	svc, _ := newTestLedger()

	_, err := svc.RecordCancellationDecision(context.Background(), uuid.New(), &dto.RecordCancellationRequest{
		ClientId:   uuid.New(),
		ActorLabel: "owner:demo",
		Accepted:   true,
	})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestRecordCancellationRequiresActorLabel(t *testing.T) {
	svc, _ := newTestLedger()
	owner := uuid.New()

	created, err := svc.CreateClient(context.Background(), owner, &dto.CreateClientRequest{Name: "Acme", DiscountRate: 20})
	require.NoError(t, err)

	_, err = svc.RecordCancellationDecision(context.Background(), owner, &dto.RecordCancellationRequest{
		ClientId:   created.Id,
		ActorLabel: "  ",
		Accepted:   true,
	})
	assert.ErrorIs(t, err, ErrValidation)
}
