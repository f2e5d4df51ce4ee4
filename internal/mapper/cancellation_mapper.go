package mapper

import (
	"client-retention-be/internal/dto"
	"client-retention-be/internal/entity"
)

func ToCancellationEventResponse(c *entity.Cancellation) dto.CancellationEventResponse {
	return dto.CancellationEventResponse{
		Id:              c.Id,
		ClientId:        c.ClientId,
		ActorLabel:      c.ActorLabel,
		DiscountOffered: c.DiscountOffered,
		Accepted:        c.Accepted,
		Reason:          c.Reason,
		Feedback:        c.Feedback,
		CreatedAt:       c.CreatedAt,
	}
}
