package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/roomtrack/roomtrack/internal/domain/stats"
	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/port/cache"
	"github.com/roomtrack/roomtrack/internal/port/database"
)

// StatsService serves dashboard aggregates through a short-TTL cache.
// Aggregates are derived views; a stale read here never affects the
// occupancy or payment invariants.
type StatsService struct {
	store database.Store
	cache cache.Cache
	ttl   time.Duration
}

// NewStatsService creates a new StatsService. A nil cache disables
// caching entirely.
func NewStatsService(store database.Store, c cache.Cache, ttl time.Duration) *StatsService {
	return &StatsService{store: store, cache: c, ttl: ttl}
}

// AdminOverview returns platform-wide counts. Admin only.
func (s *StatsService) AdminOverview(ctx context.Context, actor *user.User) (*stats.AdminOverview, error) {
	if !actor.IsAdmin() {
		return nil, forbid("admin overview requires admin")
	}

	var ov stats.AdminOverview
	if s.cachedGet(ctx, "stats:admin", &ov) {
		return &ov, nil
	}

	fresh, err := s.store.AdminStats(ctx)
	if err != nil {
		return nil, err
	}
	s.cachedSet(ctx, "stats:admin", fresh)
	return fresh, nil
}

// LandlordOverview returns the landlord's portfolio summary. Landlords
// see their own; admins may inspect any landlord.
func (s *StatsService) LandlordOverview(ctx context.Context, actor *user.User, landlordID string) (*stats.LandlordOverview, error) {
	if landlordID == "" {
		landlordID = actor.ID
	}
	if landlordID != actor.ID && !actor.IsAdmin() {
		return nil, forbid("landlord overview for %s requires admin", landlordID)
	}

	key := "stats:landlord:" + landlordID
	var ov stats.LandlordOverview
	if s.cachedGet(ctx, key, &ov) {
		return &ov, nil
	}

	fresh, err := s.store.LandlordStats(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	s.cachedSet(ctx, key, fresh)
	return fresh, nil
}

func (s *StatsService) cachedGet(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil || !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.Warn("stats cache decode failed", "key", key, "error", err)
		return false
	}
	return true
}

func (s *StatsService) cachedSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		slog.Warn("stats cache store failed", "key", key, "error", err)
	}
}
