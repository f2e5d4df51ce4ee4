package model

import (
	"time"

	"github.com/google/uuid"
)

// Cancellation GORM model for cancellation attempt events.
// Append-only: there is deliberately no UpdatedAt and no soft delete.
type Cancellation struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientId        uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorLabel      string    `gorm:"type:varchar(255);not null"`
	DiscountOffered bool      `gorm:"not null"`
	Accepted        bool      `gorm:"not null"`
	Reason          string    `gorm:"type:text"`
	Feedback        string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index"`

	// Relations
	Client Client `gorm:"foreignKey:ClientId"`
}

func (Cancellation) TableName() string {
	return "cancellations"
}
