package repository

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/alfurqan/academy-admin/models"
)

// RedisPreferencesStore persists UI preferences in a Redis hash per owner.
// Missing keys fall back to defaults; every change writes through.
type RedisPreferencesStore struct {
	rc        *redis.Client
	keyPrefix string
}

// NewRedisPreferencesStore creates a preferences store on the given client.
func NewRedisPreferencesStore(rc *redis.Client, keyPrefix string) *RedisPreferencesStore {
	if keyPrefix == "" {
		keyPrefix = "academy-admin"
	}
	return &RedisPreferencesStore{rc: rc, keyPrefix: keyPrefix}
}

func (s *RedisPreferencesStore) key(owner string) string {
	return fmt.Sprintf("%s:prefs:%s", s.keyPrefix, owner)
}

// Get reads the owner's preferences, returning defaults when nothing is
// stored.
func (s *RedisPreferencesStore) Get(ctx context.Context, owner string) (models.UiPreferences, error) {
	prefs := models.DefaultPreferences()

	values, err := s.rc.HGetAll(ctx, s.key(owner)).Result()
	if err != nil {
		return prefs, fmt.Errorf("failed to read preferences for %s: %w", owner, err)
	}
	if len(values) == 0 {
		return prefs, nil
	}

	if v, ok := values["theme"]; ok {
		prefs.Theme = v
	}
	if v, ok := values["sidebar_collapsed"]; ok {
		prefs.SidebarCollapsed = v == "1" || v == "true"
	}
	if v, ok := values["page_size"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			prefs.PageSize = n
		}
	}
	return prefs.Normalized(), nil
}

// Save writes the full preferences record through to Redis.
func (s *RedisPreferencesStore) Save(ctx context.Context, owner string, prefs models.UiPreferences) error {
	prefs = prefs.Normalized()

	err := s.rc.HSet(ctx, s.key(owner), map[string]any{
		"theme":             prefs.Theme,
		"sidebar_collapsed": strconv.FormatBool(prefs.SidebarCollapsed),
		"page_size":         strconv.Itoa(prefs.PageSize),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to save preferences for %s: %w", owner, err)
	}
	return nil
}

// InMemoryPreferencesStore keeps preferences in a map; used when Redis is
// disabled and in tests. Changes survive the process lifetime only.
type InMemoryPreferencesStore struct {
	mu    sync.RWMutex
	prefs map[string]models.UiPreferences
}

func NewInMemoryPreferencesStore() *InMemoryPreferencesStore {
	return &InMemoryPreferencesStore{prefs: make(map[string]models.UiPreferences)}
}

func (s *InMemoryPreferencesStore) Get(_ context.Context, owner string) (models.UiPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.prefs[owner]; ok {
		return p.Normalized(), nil
	}
	return models.DefaultPreferences(), nil
}

func (s *InMemoryPreferencesStore) Save(_ context.Context, owner string, prefs models.UiPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[owner] = prefs.Normalized()
	return nil
}
