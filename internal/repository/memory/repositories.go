package memory

import (
	"context"

	"client-retention-be/internal/entity"
	"client-retention-be/internal/repository/specification"
)

type clientRepository struct {
	uow *unitOfWork
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	c := *client
	r.uow.enqueue(func(s *Store) {
		s.clients[c.Id] = c
	})
	return nil
}

func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	c := *client
	r.uow.enqueue(func(s *Store) {
		existing, ok := s.clients[c.Id]
		if !ok {
			return
		}
		existing.Name = c.Name
		existing.DiscountRate = c.DiscountRate
		existing.Status = c.Status
		existing.NextBillingDate = c.NextBillingDate
		s.clients[c.Id] = existing
	})
	return nil
}

func (r *clientRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Client, error) {
	crit := buildCriteria(specs)
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	for _, c := range r.uow.store.clients {
		if crit.matchClient(c) {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (r *clientRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Client, error) {
	crit := buildCriteria(specs)
	r.uow.store.mu.RLock()
	var result []*entity.Client
	for _, c := range r.uow.store.clients {
		if crit.matchClient(c) {
			found := c
			result = append(result, &found)
		}
	}
	r.uow.store.mu.RUnlock()
	sortClients(result, crit.orderDesc)
	return result, nil
}

func (r *clientRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	clients, err := r.FindAll(ctx, specs...)
	return int64(len(clients)), err
}

type cancellationRepository struct {
	uow *unitOfWork
}

func (r *cancellationRepository) Create(ctx context.Context, cancellation *entity.Cancellation) error {
	ev := *cancellation
	r.uow.enqueue(func(s *Store) {
		s.cancellations = append(s.cancellations, ev)
	})
	return nil
}

func (r *cancellationRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Cancellation, error) {
	crit := buildCriteria(specs)
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	for i := range r.uow.store.cancellations {
		if crit.matchCancellation(r.uow.store.cancellations[i]) {
			found := r.uow.store.cancellations[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (r *cancellationRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Cancellation, error) {
	crit := buildCriteria(specs)
	r.uow.store.mu.RLock()
	var result []*entity.Cancellation
	for i := range r.uow.store.cancellations {
		if crit.matchCancellation(r.uow.store.cancellations[i]) {
			found := r.uow.store.cancellations[i]
			result = append(result, &found)
		}
	}
	r.uow.store.mu.RUnlock()
	sortCancellations(result, crit.orderDesc)
	return result, nil
}

func (r *cancellationRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	events, err := r.FindAll(ctx, specs...)
	return int64(len(events)), err
}

type userRepository struct {
	uow *unitOfWork
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	u := *user
	r.uow.enqueue(func(s *Store) {
		s.users[u.Id] = u
	})
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	u := *user
	r.uow.enqueue(func(s *Store) {
		s.users[u.Id] = u
	})
	return nil
}

func (r *userRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	crit := buildCriteria(specs)
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	for _, u := range r.uow.store.users {
		if crit.matchUser(u) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *userRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	crit := buildCriteria(specs)
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	var count int64
	for _, u := range r.uow.store.users {
		if crit.matchUser(u) {
			count++
		}
	}
	return count, nil
}

func (r *userRepository) CreateProvider(ctx context.Context, provider *entity.UserProvider) error {
	p := *provider
	r.uow.enqueue(func(s *Store) {
		s.providers[p.ProviderName+"|"+p.ProviderUserId] = p
	})
	return nil
}

func (r *userRepository) FindProvider(ctx context.Context, providerName, providerUserId string) (*entity.UserProvider, error) {
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	if p, ok := r.uow.store.providers[providerName+"|"+providerUserId]; ok {
		found := p
		return &found, nil
	}
	return nil, nil
}
