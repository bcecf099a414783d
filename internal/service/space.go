package service

import (
	"context"
	"fmt"
	"time"

	"andromeda/internal/cache"
	"andromeda/internal/clients"
	"andromeda/internal/models"
)

const (
	spaceTTL         = 10 * time.Minute
	cacheKeySummary  = "space:summary"
	recentThreshold  = time.Hour
	cacheKeyLatestFn = "space:%s:latest"
)

// SourceStatus — сводка по одному источнику космических данных.
type SourceStatus struct {
	Source      string `json:"source"`
	LastUpdated string `json:"last_updated,omitempty"`
	DataCount   int    `json:"data_count"`
	IsRecent    bool   `json:"is_recent"`
}

// SpaceService — универсальный кэш космических источников (APOD, NEO,
// DONKI и т.д.), проксируемый с upstream.
type SpaceService interface {
	Summary(ctx context.Context) (map[string]interface{}, error)
	Latest(ctx context.Context, source string) (map[string]interface{}, error)
	Refresh(ctx context.Context, source string) error
	Sources() map[string]string
	Status(ctx context.Context, source string) (SourceStatus, error)
}

type spaceService struct {
	accessor *cache.Accessor
	client   clients.ReadingsClient
}

func NewSpaceService(accessor *cache.Accessor, client clients.ReadingsClient) SpaceService {
	return &spaceService{
		accessor: accessor,
		client:   client,
	}
}

func (s *spaceService) Summary(ctx context.Context) (map[string]interface{}, error) {
	var summary map[string]interface{}
	err := s.accessor.GetOrCompute(ctx, cacheKeySummary, spaceTTL, &summary,
		func(ctx context.Context) (interface{}, error) {
			raw, err := s.client.SpaceSummary(ctx)
			if err != nil {
				return nil, fmt.Errorf("fetch space summary: %w", err)
			}
			return clients.UnwrapData(raw), nil
		})
	return summary, err
}

func (s *spaceService) Latest(ctx context.Context, source string) (map[string]interface{}, error) {
	var latest map[string]interface{}
	key := fmt.Sprintf(cacheKeyLatestFn, source)
	err := s.accessor.GetOrCompute(ctx, key, spaceTTL, &latest,
		func(ctx context.Context) (interface{}, error) {
			raw, err := s.client.SpaceLatest(ctx, source)
			if err != nil {
				return nil, fmt.Errorf("fetch latest for %s: %w", source, err)
			}
			return clients.UnwrapData(raw), nil
		})
	return latest, err
}

// Refresh обновляет источник на upstream и сбрасывает связанный кэш.
func (s *spaceService) Refresh(ctx context.Context, source string) error {
	if err := s.client.SpaceRefresh(ctx, source); err != nil {
		return fmt.Errorf("refresh %s: %w", source, err)
	}
	s.accessor.Invalidate(ctx, fmt.Sprintf(cacheKeyLatestFn, source), cacheKeySummary)
	return nil
}

func (s *spaceService) Sources() map[string]string {
	return map[string]string{
		"iss":        "International Space Station",
		"nasa_apod":  "NASA - Astronomy Picture of the Day",
		"nasa_neo":   "NASA - Near Earth Objects",
		"nasa_donki": "NOAA - Space Weather Events",
		"osdr":       "NASA - Open Science Data Repository",
		"spacex":     "SpaceX - Rockets & Launches",
	}
}

func (s *spaceService) Status(ctx context.Context, source string) (SourceStatus, error) {
	data, err := s.Latest(ctx, source)
	if err != nil {
		return SourceStatus{Source: source}, err
	}

	status := SourceStatus{
		Source:      source,
		LastUpdated: models.ExtractString(data, "fetched_at"),
		DataCount:   len(models.ExtractMap(data, "payload")),
	}
	if t, ok := models.ParseTime(status.LastUpdated); ok {
		status.IsRecent = time.Since(t) < recentThreshold
	}
	return status, nil
}
