package holiday

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Service resolves a year's holiday map, preferring the on-disk cache and
// falling back to the provider API
type Service struct {
	store    *Store
	fetcher  *Fetcher
	provider Provider
	logger   *zap.Logger
}

// NewService creates a Service bound to one provider
func NewService(store *Store, fetcher *Fetcher, provider Provider, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		fetcher:  fetcher,
		provider: provider,
		logger:   logger,
	}
}

// Holidays returns the holiday map for year, fetching and caching it when
// no cache file exists yet. A cache file that exists but cannot be decoded
// is reported as an error, never silently refetched.
func (s *Service) Holidays(year int) (Map, error) {
	path := s.store.Filename(year, s.provider)

	hm, err := s.store.Load(path)
	if err == nil {
		return hm, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return nil, err
	}

	hm, err = s.fetcher.Fetch(year, s.provider)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(path, hm); err != nil {
		return nil, fmt.Errorf("failed to cache holidays: %w", err)
	}

	s.logger.Info("Fetched and cached holidays",
		zap.Int("year", year),
		zap.Int("count", len(hm)),
		zap.String("provider", s.provider.Slug()))

	return hm, nil
}

// Load returns the cached map for year without ever touching the network.
// A missing cache file yields an empty map.
func (s *Service) Load(year int) (Map, error) {
	hm, err := s.store.Load(s.store.Filename(year, s.provider))
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return make(Map), nil
		}
		return nil, err
	}
	return hm, nil
}

// Save persists the map as the cache for year
func (s *Service) Save(year int, hm Map) error {
	return s.store.Save(s.store.Filename(year, s.provider), hm)
}
