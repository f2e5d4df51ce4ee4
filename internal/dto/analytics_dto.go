package dto

import "github.com/google/uuid"

// ClientRetentionSummaryResponse is one analytics row per client. Counts cover
// every cancellation attempt, including ones the client was talked out of.
type ClientRetentionSummaryResponse struct {
	ClientId             uuid.UUID `json:"client_id"`
	Name                 string    `json:"name"`
	CurrentStatus        string    `json:"current_status"`
	TotalCancellations   int       `json:"total_cancellations"`
	AcceptedOffers       int       `json:"accepted_offers"`
	AvgRetentionDiscount float64   `json:"avg_retention_discount"`
	CommonReasons        string    `json:"common_reasons"`
}
