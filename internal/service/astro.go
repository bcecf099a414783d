package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"andromeda/internal/astro"
	"andromeda/internal/cache"
	"andromeda/internal/clients"
	"andromeda/internal/logger"
	"andromeda/internal/models"
)

const (
	astroEventsTTL   = time.Hour
	positionsMaxDays = 10
)

// ErrCredentialsMissing — ключи AstronomyAPI не настроены. Для событий это
// повод отдать mock-данные, для позиций — явная ошибка. Асимметрия
// унаследована от исходной витрины и сохраняется намеренно.
var ErrCredentialsMissing = errors.New("astronomy API credentials not configured")

// AstroService — события и позиции небесных тел с нормализацией и
// деградацией в mock-данные.
type AstroService interface {
	GetEvents(ctx context.Context, lat, lon float64, fromDate, toDate string) (astro.EventsResponse, error)
	Positions(ctx context.Context, q clients.PositionsQuery) (map[string]interface{}, error)
	BodyPositions(ctx context.Context, body string, q clients.PositionsQuery) (map[string]interface{}, error)
}

type astroService struct {
	accessor *cache.Accessor
	client   clients.AstroClient
	hasCreds bool
}

func NewAstroService(accessor *cache.Accessor, client clients.AstroClient, hasCreds bool) AstroService {
	return &astroService{
		accessor: accessor,
		client:   client,
		hasCreds: hasCreds,
	}
}

func (s *astroService) GetEvents(ctx context.Context, lat, lon float64, fromDate, toDate string) (astro.EventsResponse, error) {
	key := fmt.Sprintf("astro:events:%.4f:%.4f:%s:%s", lat, lon, fromDate, toDate)

	var resp astro.EventsResponse
	err := s.accessor.GetOrCompute(ctx, key, astroEventsTTL, &resp,
		func(ctx context.Context) (interface{}, error) {
			return s.fetchEvents(ctx, lat, lon, fromDate, toDate), nil
		})
	return resp, err
}

// fetchEvents собирает события: затмения для Солнца и Луны плюс фазы Луны
// из позиций. Три независимых запроса идут параллельно; если не удался ни
// один — mock-данные вместо ошибки.
func (s *astroService) fetchEvents(ctx context.Context, lat, lon float64, fromDate, toDate string) astro.EventsResponse {
	log := logger.WithComponent("astro")

	// Без ключей сразу mock, без походов в сеть
	if !s.hasCreds {
		return astro.GenerateMockNow(fromDate, toDate)
	}

	var (
		mu         sync.Mutex
		events     []models.AstronomyEvent
		sunEvents  []models.SunEvent
		moonPhases []models.MoonPhase
		anyOK      bool
		wg         sync.WaitGroup
	)

	for _, body := range []string{"sun", "moon"} {
		wg.Add(1)
		go func(body string) {
			defer wg.Done()
			raw, err := s.client.BodyEvents(ctx, body, lat, lon, fromDate, toDate)
			if err != nil {
				log.Warnf("events fetch for %s failed: %v", body, err)
				return
			}
			parsed := astro.ParseBodyEvents(raw, body, fromDate)
			mu.Lock()
			events = append(events, parsed.Events...)
			sunEvents = append(sunEvents, parsed.Sun...)
			anyOK = true
			mu.Unlock()
		}(body)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		// Диапазон позиций урезается, запрос дорогой
		clampedTo := astro.ClampDateRange(fromDate, toDate, positionsMaxDays)
		raw, err := s.client.BodyPositions(ctx, "moon", clients.PositionsQuery{
			Lat:      lat,
			Lon:      lon,
			FromDate: fromDate,
			ToDate:   clampedTo,
			Time:     "12:00:00",
		})
		if err != nil {
			log.Warnf("moon positions fetch failed: %v", err)
			return
		}
		phases := astro.ParseMoonPhases(raw)
		mu.Lock()
		moonPhases = append(moonPhases, phases...)
		anyOK = true
		mu.Unlock()
	}()

	wg.Wait()

	if !anyOK {
		log.Warn("all astronomy upstream calls failed, falling back to mock data")
		return astro.GenerateMockNow(fromDate, toDate)
	}

	if events == nil {
		events = []models.AstronomyEvent{}
	}
	if sunEvents == nil {
		sunEvents = []models.SunEvent{}
	}
	if moonPhases == nil {
		moonPhases = []models.MoonPhase{}
	}
	return astro.EventsResponse{
		OK:   true,
		Data: events,
		Moon: moonPhases,
		Sun:  sunEvents,
	}
}

func (s *astroService) Positions(ctx context.Context, q clients.PositionsQuery) (map[string]interface{}, error) {
	if !s.hasCreds {
		return nil, ErrCredentialsMissing
	}
	raw, err := s.client.Positions(ctx, q)
	if err != nil {
		return nil, err
	}
	return clients.UnwrapData(raw), nil
}

func (s *astroService) BodyPositions(ctx context.Context, body string, q clients.PositionsQuery) (map[string]interface{}, error) {
	if !s.hasCreds {
		return nil, ErrCredentialsMissing
	}
	raw, err := s.client.BodyPositions(ctx, body, q)
	if err != nil {
		return nil, err
	}
	return clients.UnwrapData(raw), nil
}

