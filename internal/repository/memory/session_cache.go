package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"pinpoint-be/internal/entity"
)

// SessionCache keeps recently resolved sessions keyed by their join code.
// Only the session row itself is cached; member lists are always read fresh.
type SessionCache struct {
	cache *cache.Cache
}

func NewSessionCache() *SessionCache {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionCache{
		cache: c,
	}
}

func (r *SessionCache) Save(session *entity.Session) {
	r.cache.Set(session.Code, session, cache.DefaultExpiration)
}

func (r *SessionCache) Get(code string) (*entity.Session, bool) {
	if x, found := r.cache.Get(code); found {
		return x.(*entity.Session), true
	}
	return nil, false
}

func (r *SessionCache) Delete(code string) {
	r.cache.Delete(code)
}
