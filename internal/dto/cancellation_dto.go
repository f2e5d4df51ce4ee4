package dto

import (
	"time"

	"github.com/google/uuid"
)

// RecordCancellationRequest for recording a client's cancellation attempt
// and the retention decision that came out of it.
type RecordCancellationRequest struct {
	ClientId        uuid.UUID `json:"client_id" validate:"required"`
	ActorLabel      string    `json:"actor_label" validate:"required"`
	DiscountOffered bool      `json:"discount_offered"`
	Accepted        bool      `json:"accepted"`
	Reason          string    `json:"reason"`
	Feedback        string    `json:"feedback"`
}

type CancellationEventResponse struct {
	Id              uuid.UUID `json:"id"`
	ClientId        uuid.UUID `json:"client_id"`
	ActorLabel      string    `json:"actor_label"`
	DiscountOffered bool      `json:"discount_offered"`
	Accepted        bool      `json:"accepted"`
	Reason          string    `json:"reason,omitempty"`
	Feedback        string    `json:"feedback,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// CancellationDecisionResponse returns the updated client together with the
// event that was appended, so the caller can render both without a second
// round trip.
type CancellationDecisionResponse struct {
	Client ClientResponse            `json:"client"`
	Event  CancellationEventResponse `json:"event"`
}
