package memory

import (
	"sort"
	"sync"

	"client-retention-be/internal/entity"
	"client-retention-be/internal/repository/specification"

	"github.com/google/uuid"
)

// Store is an in-memory stand-in for the relational store. It backs the
// memory unit of work used by service tests and local tooling.
type Store struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]entity.User
	providers     map[string]entity.UserProvider
	clients       map[uuid.UUID]entity.Client
	cancellations []entity.Cancellation
}

func NewStore() *Store {
	return &Store{
		users:     make(map[uuid.UUID]entity.User),
		providers: make(map[string]entity.UserProvider),
		clients:   make(map[uuid.UUID]entity.Client),
	}
}

// criteria is the subset of query shape the memory store understands. It is
// built by type-switching on the same specification values the GORM
// repositories consume, so services run unchanged against either backend.
type criteria struct {
	id        *uuid.UUID
	ownerID   *uuid.UUID
	clientID  *uuid.UUID
	clientIDs []uuid.UUID
	email     *string
	status    *string
	orderDesc bool
}

func buildCriteria(specs []specification.Specification) criteria {
	var c criteria
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			id := v.ID
			c.id = &id
		case specification.OwnedBy:
			owner := v.UserID
			c.ownerID = &owner
		case specification.ByClientID:
			id := v.ClientID
			c.clientID = &id
		case specification.ByClientIDs:
			c.clientIDs = v.ClientIDs
		case specification.ByEmail:
			email := v.Email
			c.email = &email
		case specification.OrderBy:
			c.orderDesc = v.Desc
		case specification.FilterBy:
			if v.Field == "status" {
				if status, ok := v.Value.(string); ok {
					c.status = &status
				}
			}
		}
	}
	return c
}

func (c criteria) matchClient(cl entity.Client) bool {
	if c.id != nil && cl.Id != *c.id {
		return false
	}
	if c.ownerID != nil && cl.UserId != *c.ownerID {
		return false
	}
	if c.status != nil && string(cl.Status) != *c.status {
		return false
	}
	return true
}

func (c criteria) matchCancellation(ev entity.Cancellation) bool {
	if c.id != nil && ev.Id != *c.id {
		return false
	}
	if c.clientID != nil && ev.ClientId != *c.clientID {
		return false
	}
	if len(c.clientIDs) > 0 {
		found := false
		for _, id := range c.clientIDs {
			if ev.ClientId == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (c criteria) matchUser(u entity.User) bool {
	if c.id != nil && u.Id != *c.id {
		return false
	}
	if c.email != nil && u.Email != *c.email {
		return false
	}
	return true
}

func sortClients(clients []*entity.Client, desc bool) {
	sort.SliceStable(clients, func(i, j int) bool {
		if desc {
			return clients[i].CreatedAt.After(clients[j].CreatedAt)
		}
		return clients[i].CreatedAt.Before(clients[j].CreatedAt)
	})
}

func sortCancellations(events []*entity.Cancellation, desc bool) {
	sort.SliceStable(events, func(i, j int) bool {
		if desc {
			return events[i].CreatedAt.After(events[j].CreatedAt)
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
}
