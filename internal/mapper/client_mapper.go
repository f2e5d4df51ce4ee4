package mapper

import (
	"client-retention-be/internal/dto"
	"client-retention-be/internal/entity"
)

// ToClientResponse converts a client entity to its API representation.
func ToClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		Id:                    c.Id,
		Name:                  c.Name,
		DiscountRate:          c.DiscountRate,
		Status:                string(c.Status),
		SubscriptionStartDate: c.SubscriptionStartDate,
		NextBillingDate:       c.NextBillingDate,
		CreatedAt:             c.CreatedAt,
	}
}

func ToClientResponseList(clients []*entity.Client) []dto.ClientResponse {
	result := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		result = append(result, ToClientResponse(c))
	}
	return result
}
