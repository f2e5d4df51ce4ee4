package entity

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus is the lifecycle state of a client's subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// BillingPeriodMonths is the length of one billing period.
// A retained client is always rebilled one month out from the decision.
const BillingPeriodMonths = 1

// Client is one billable subscriber managed by an account owner.
// Status and NextBillingDate only change through a cancellation decision.
type Client struct {
	Id                    uuid.UUID
	UserId                uuid.UUID // account owner
	Name                  string
	DiscountRate          int // retention discount percentage, 0-100
	Status                SubscriptionStatus
	SubscriptionStartDate time.Time
	NextBillingDate       time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
