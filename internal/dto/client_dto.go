package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateClientRequest struct {
	Name         string `json:"name" validate:"required"`
	DiscountRate int    `json:"discount_rate" validate:"gte=0,lte=100"`
}

type ClientResponse struct {
	Id                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	DiscountRate          int       `json:"discount_rate"`
	Status                string    `json:"status"`
	SubscriptionStartDate time.Time `json:"subscription_start_date"`
	NextBillingDate       time.Time `json:"next_billing_date"`
	CreatedAt             time.Time `json:"created_at"`
}
