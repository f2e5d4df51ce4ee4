package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy scopes a query to one account owner. Every ledger and analytics
// read goes through this; there is no cross-account visibility.
type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByClientID struct {
	ClientID uuid.UUID
}

func (s ByClientID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("client_id = ?", s.ClientID)
}

type ByClientIDs struct {
	ClientIDs []uuid.UUID
}

func (s ByClientIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("client_id IN ?", s.ClientIDs)
}
