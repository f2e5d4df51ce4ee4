package service

import (
	"context"
	"testing"

	"client-retention-be/internal/dto"
	"client-retention-be/internal/entity"
	"client-retention-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalytics() (IAnalyticsService, IClientService) {
	factory := memory.NewFactory(memory.NewStore())
	return NewAnalyticsService(factory), NewClientService(factory)
}

func recordDecision(t *testing.T, ledger IClientService, owner, clientId uuid.UUID, accepted bool, reason string) {
	t.Helper()
	_, err := ledger.RecordCancellationDecision(context.Background(), owner, &dto.RecordCancellationRequest{
		ClientId:        clientId,
		ActorLabel:      "owner:test",
		DiscountOffered: true,
		Accepted:        accepted,
		Reason:          reason,
	})
	require.NoError(t, err)
}

func TestRetentionSummaryEmptyAccount(t *testing.T) {
	analytics, _ := newTestAnalytics()

	rows, err := analytics.RetentionSummary(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestRetentionSummaryClientWithoutEvents(t *testing.T) {
	analytics, ledger := newTestAnalytics()
	owner := uuid.New()

	created, err := ledger.CreateClient(context.Background(), owner, &dto.CreateClientRequest{Name: "Quiet Co", DiscountRate: 10})
	require.NoError(t, err)

	rows, err := analytics.RetentionSummary(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// A client with no history still gets a row, with zeroed metrics.
	row := rows[0]
	assert.Equal(t, created.Id, row.ClientId)
	assert.Equal(t, "Quiet Co", row.Name)
	assert.Equal(t, string(entity.SubscriptionStatusActive), row.CurrentStatus)
	assert.Equal(t, 0, row.TotalCancellations)
	assert.Equal(t, 0, row.AcceptedOffers)
	assert.Equal(t, 0.0, row.AvgRetentionDiscount)
	assert.Equal(t, "", row.CommonReasons)
}

func TestRetentionSummaryAcmeScenario(t *testing.T) {
	analytics, ledger := newTestAnalytics()
	owner := uuid.New()

	acme, err := ledger.CreateClient(context.Background(), owner, &dto.CreateClientRequest{Name: "Acme Corp", DiscountRate: 20})
	require.NoError(t, err)

	recordDecision(t, ledger, owner, acme.Id, false, "Too expensive")
	recordDecision(t, ledger, owner, acme.Id, true, "Too expensive")

	rows, err := analytics.RetentionSummary(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 2, row.TotalCancellations)
	assert.Equal(t, 1, row.AcceptedOffers)
	// One accepted out of two events at a 20% rate averages to 10.00.
	assert.Equal(t, 10.0, row.AvgRetentionDiscount)
	assert.Equal(t, "Too expensive", row.CommonReasons)
	assert.Equal(t, string(entity.SubscriptionStatusActive), row.CurrentStatus)
}

func TestRetentionSummaryReasonsDistinctAndNonEmpty(t *testing.T) {
	analytics, ledger := newTestAnalytics()
	owner := uuid.New()

	client, err := ledger.CreateClient(context.Background(), owner, &dto.CreateClientRequest{Name: "Acme", DiscountRate: 10})
	require.NoError(t, err)

	recordDecision(t, ledger, owner, client.Id, false, "Too expensive")
	recordDecision(t, ledger, owner, client.Id, true, "")
	recordDecision(t, ledger, owner, client.Id, false, "Missing features")
	recordDecision(t, ledger, owner, client.Id, true, "Too expensive")

	rows, err := analytics.RetentionSummary(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Too expensive, Missing features", rows[0].CommonReasons)
}

func TestRetentionSummaryMultipleClients(t *testing.T) {
	analytics, ledger := newTestAnalytics()
	owner := uuid.New()

	first, err := ledger.CreateClient(context.Background(), owner, &dto.CreateClientRequest{Name: "First", DiscountRate: 30})
	require.NoError(t, err)
	second, err := ledger.CreateClient(context.Background(), owner, &dto.CreateClientRequest{Name: "Second", DiscountRate: 50})
	require.NoError(t, err)

	recordDecision(t, ledger, owner, first.Id, true, "Price")
	recordDecision(t, ledger, owner, second.Id, false, "Support")

	rows, err := analytics.RetentionSummary(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byName := map[string]dto.ClientRetentionSummaryResponse{}
	for _, row := range rows {
		byName[row.Name] = row
	}

	assert.Equal(t, 30.0, byName["First"].AvgRetentionDiscount)
	assert.Equal(t, string(entity.SubscriptionStatusActive), byName["First"].CurrentStatus)

	assert.Equal(t, 0.0, byName["Second"].AvgRetentionDiscount)
	assert.Equal(t, string(entity.SubscriptionStatusCancelled), byName["Second"].CurrentStatus)
}

func TestRetentionSummaryRounding(t *testing.T) {
	analytics, ledger := newTestAnalytics()
	owner := uuid.New()

	client, err := ledger.CreateClient(context.Background(), owner, &dto.CreateClientRequest{Name: "Acme", DiscountRate: 10})
	require.NoError(t, err)

	// One accept over three events: 10/3 rounds to 3.33.
	recordDecision(t, ledger, owner, client.Id, true, "")
	recordDecision(t, ledger, owner, client.Id, false, "")
	recordDecision(t, ledger, owner, client.Id, false, "")

	rows, err := analytics.RetentionSummary(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3.33, rows[0].AvgRetentionDiscount)
}

func TestRetentionSummaryIdempotent(t *testing.T) {
	analytics, ledger := newTestAnalytics()
	owner := uuid.New()

	client, err := ledger.CreateClient(context.Background(), owner, &dto.CreateClientRequest{Name: "Acme", DiscountRate: 20})
	require.NoError(t, err)
	recordDecision(t, ledger, owner, client.Id, true, "Price")

	first, err := analytics.RetentionSummary(context.Background(), owner)
	require.NoError(t, err)
	second, err := analytics.RetentionSummary(context.Background(), owner)
	require.NoError(t, err)

	// Reads never mutate, so back-to-back summaries are identical.
	assert.Equal(t, first, second)
}

func TestRetentionSummaryScopedToOwner(t *testing.T) {
	analytics, ledger := newTestAnalytics()
	owner := uuid.New()
	other := uuid.New()

	_, err := ledger.CreateClient(context.Background(), other, &dto.CreateClientRequest{Name: "Not Yours", DiscountRate: 10})
	require.NoError(t, err)

	rows, err := analytics.RetentionSummary(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
