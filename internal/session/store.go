package session

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"

	"pdf-rag/internal/helper"
)

// Store keeps sessions in memory, keyed by a random UUID. Every Get extends
// a session's lifetime; sessions idle for longer than the TTL are evicted
// together with their index.
type Store struct {
	pipeline Pipeline
	cache    *ttlcache.Cache[string, *Session]
}

// NewStore creates a store. A ttl of zero keeps sessions forever.
func NewStore(pipeline Pipeline, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	cache := ttlcache.New[string, *Session](
		ttlcache.WithTTL[string, *Session](ttl),
	)
	cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *Session]) {
		if reason == ttlcache.EvictionReasonExpired {
			log.Info().Str("session", item.Key()).Msg("Evicted idle session")
		}
	})
	return &Store{pipeline: pipeline, cache: cache}
}

func (s *Store) Create() (*Session, error) {
	id, err := helper.GenerateUUID()
	if err != nil {
		return nil, err
	}
	sess := New(id, s.pipeline)
	s.cache.Set(id, sess, ttlcache.DefaultTTL)

	log.Debug().Str("session", id).Msg("Created session")
	return sess, nil
}

// Get returns a live session and marks it as used.
func (s *Store) Get(id string) (*Session, bool) {
	item := s.cache.Get(id)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// GetOrCreate returns the session for id, or a new one when id is unknown or expired.
func (s *Store) GetOrCreate(id string) (*Session, bool, error) {
	if id != "" {
		if sess, ok := s.Get(id); ok {
			return sess, false, nil
		}
	}
	sess, err := s.Create()
	if err != nil {
		return nil, false, err
	}
	return sess, true, nil
}

// Sweep removes expired sessions now instead of waiting for the sweeper.
func (s *Store) Sweep() {
	s.cache.DeleteExpired()
}

// RunSweeper evicts expired sessions as they expire until ctx is done.
func (s *Store) RunSweeper(ctx context.Context) {
	go func() {
		<-ctx.Done()
		s.cache.Stop()
	}()
	s.cache.Start()
}

// Len counts stored sessions.
func (s *Store) Len() int {
	return s.cache.Len()
}
