package service

import (
	"context"
	"fmt"
	"time"

	"andromeda/internal/cache"
	"andromeda/internal/clients"
	"andromeda/internal/logger"
	"andromeda/internal/models"
)

const (
	readingsTTL      = 5 * time.Minute
	cacheKeyLastISS  = "iss:last"
	cacheKeyISSTrend = "iss:trend"
)

// ReadingsService — телеметрия МКС: последнее показание и тренд движения,
// оба со сквозным кэшем поверх upstream.
type ReadingsService interface {
	GetLastReading(ctx context.Context) (models.PositionReading, error)
	GetTrend(ctx context.Context) (models.TrendSummary, error)
	Refresh(ctx context.Context) (models.PositionReading, error)
}

type readingsService struct {
	accessor *cache.Accessor
	client   clients.ReadingsClient
}

func NewReadingsService(accessor *cache.Accessor, client clients.ReadingsClient) ReadingsService {
	return &readingsService{
		accessor: accessor,
		client:   client,
	}
}

func (s *readingsService) GetLastReading(ctx context.Context) (models.PositionReading, error) {
	var reading models.PositionReading
	err := s.accessor.GetOrCompute(ctx, cacheKeyLastISS, readingsTTL, &reading,
		func(ctx context.Context) (interface{}, error) {
			raw, err := s.client.GetLast(ctx)
			if err != nil {
				return nil, fmt.Errorf("fetch last reading: %w", err)
			}
			return models.ReadingFromMap(clients.UnwrapData(raw)), nil
		})
	return reading, err
}

func (s *readingsService) GetTrend(ctx context.Context) (models.TrendSummary, error) {
	var trend models.TrendSummary
	err := s.accessor.GetOrCompute(ctx, cacheKeyISSTrend, readingsTTL, &trend,
		func(ctx context.Context) (interface{}, error) {
			raw, err := s.client.GetTrend(ctx)
			if err != nil {
				return nil, fmt.Errorf("fetch trend: %w", err)
			}
			return models.TrendFromMap(clients.UnwrapData(raw)), nil
		})
	return trend, err
}

// Refresh сбрасывает кэш и принудительно обновляет показание на upstream.
func (s *readingsService) Refresh(ctx context.Context) (models.PositionReading, error) {
	s.accessor.Invalidate(ctx, cacheKeyLastISS, cacheKeyISSTrend)

	raw, err := s.client.TriggerFetch(ctx)
	if err != nil {
		return models.PositionReading{}, fmt.Errorf("trigger fetch: %w", err)
	}

	reading := models.ReadingFromMap(clients.UnwrapData(raw))
	if err := s.accessor.Store().SetJSON(ctx, cacheKeyLastISS, reading, readingsTTL); err != nil {
		logger.WithComponent("readings").Warnf("failed to cache refreshed reading: %v", err)
	}
	return reading, nil
}
