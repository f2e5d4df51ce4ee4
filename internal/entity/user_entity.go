package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string // nil for OAuth-only accounts
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProvider links a user to an external identity provider (e.g. Google).
type UserProvider struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	ProviderName   string
	ProviderUserId string
	CreatedAt      time.Time
}
