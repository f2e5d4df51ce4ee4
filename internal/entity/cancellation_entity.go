package entity

import (
	"time"

	"github.com/google/uuid"
)

// Cancellation is one immutable record of a cancellation attempt and its
// outcome. Rows are append-only: the event history is the audit trail the
// client's current status must agree with.
type Cancellation struct {
	Id              uuid.UUID
	ClientId        uuid.UUID
	ActorLabel      string // caller-supplied, stored verbatim
	DiscountOffered bool
	Accepted        bool
	Reason          string
	Feedback        string
	CreatedAt       time.Time
}
