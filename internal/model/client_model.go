package model

import (
	"time"

	"github.com/google/uuid"
)

// Client GORM model for billable subscribers
type Client struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                uuid.UUID `gorm:"type:uuid;not null;index"`
	Name                  string    `gorm:"type:varchar(255);not null"`
	DiscountRate          int       `gorm:"not null"`
	Status                string    `gorm:"type:varchar(50);not null;default:'active';index"` // active, cancelled
	SubscriptionStartDate time.Time `gorm:"not null"`
	NextBillingDate       time.Time `gorm:"not null"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (Client) TableName() string {
	return "clients"
}
