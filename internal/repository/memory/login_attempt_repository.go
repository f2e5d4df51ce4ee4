package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const maxFailedAttempts = 5

// LoginAttemptRepository tracks failed login attempts per email with a TTL,
// so a burst of bad passwords locks the account out for a cooldown window.
type LoginAttemptRepository struct {
	cache *cache.Cache
}

func NewLoginAttemptRepository() *LoginAttemptRepository {
	// Failed attempts expire after 15 minutes; purge sweep every 5.
	c := cache.New(15*time.Minute, 5*time.Minute)
	return &LoginAttemptRepository{
		cache: c,
	}
}

func (r *LoginAttemptRepository) RecordFailure(email string) int {
	count := 1
	if x, found := r.cache.Get(email); found {
		count = x.(int) + 1
	}
	r.cache.Set(email, count, cache.DefaultExpiration)
	return count
}

func (r *LoginAttemptRepository) Reset(email string) {
	r.cache.Delete(email)
}

func (r *LoginAttemptRepository) IsLocked(email string) bool {
	if x, found := r.cache.Get(email); found {
		return x.(int) >= maxFailedAttempts
	}
	return false
}
