package events

import "time"

const (
	TypeUserRegistered       = "user.registered"
	TypeCancellationRecorded = "cancellation.recorded"
)

// NewUserRegistered is emitted after a new account owner signs up.
func NewUserRegistered(userId, email, fullName string) Event {
	return BaseEvent{
		Type: TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id":   userId,
			"email":     email,
			"full_name": fullName,
		},
		OccurredAt: time.Now(),
	}
}

// NewCancellationRecorded is emitted by the request layer after a cancellation
// decision has been durably recorded. The ledger itself never publishes;
// notification fanout is strictly a post-commit concern.
func NewCancellationRecorded(ownerId, clientId, eventId, clientName string, accepted, discountOffered bool) Event {
	return BaseEvent{
		Type: TypeCancellationRecorded,
		Data: map[string]interface{}{
			"owner_id":         ownerId,
			"client_id":        clientId,
			"event_id":         eventId,
			"client_name":      clientName,
			"accepted":         accepted,
			"discount_offered": discountOffered,
		},
		OccurredAt: time.Now(),
	}
}
