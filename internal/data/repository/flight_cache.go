package repository

import (
	"context"
	"errors"
	"time"

	"flight-review/internal/data/entity"
	"flight-review/pkg/cache"

	"go.uber.org/zap"
)

// JSONCache is the subset of cache.RedisCache used by the flight decorator.
type JSONCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// cachedFlightRepository serves FindByNumber from the cache and falls through
// to the wrapped repository on a miss or a cache failure. Unknown flights are
// not cached so a newly added flight becomes visible immediately.
type cachedFlightRepository struct {
	FlightRepository
	cache JSONCache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedFlightRepository(next FlightRepository, c JSONCache, ttl time.Duration, log *zap.Logger) FlightRepository {
	return &cachedFlightRepository{
		FlightRepository: next,
		cache:            c,
		ttl:              ttl,
		log:              log.With(zap.String("repository", "flight_cache")),
	}
}

func flightCacheKey(number string) string {
	return "flight:" + number
}

func (r *cachedFlightRepository) FindByNumber(ctx context.Context, number string) (*entity.Flight, error) {
	key := flightCacheKey(number)

	var flight entity.Flight
	err := r.cache.Get(ctx, key, &flight)
	if err == nil {
		return &flight, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		r.log.Warn("Flight cache read failed", zap.Error(err), zap.String("flight_number", number))
	}

	found, err := r.FlightRepository.FindByNumber(ctx, number)
	if err != nil || found == nil {
		return found, err
	}

	if err := r.cache.Set(ctx, key, found, r.ttl); err != nil {
		r.log.Warn("Flight cache write failed", zap.Error(err), zap.String("flight_number", number))
	}

	return found, nil
}
