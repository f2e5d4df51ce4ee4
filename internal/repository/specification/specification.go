package specification

import "gorm.io/gorm"

// Specification composes query criteria onto a GORM query.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
