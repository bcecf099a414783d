package service

import (
	"context"
	"fmt"
	"time"

	"andromeda/internal/cache"
	"andromeda/internal/clients"
	"andromeda/internal/models"
	"andromeda/internal/query"
)

const (
	catalogTTL      = 10 * time.Minute
	cacheKeyCatalog = "osdr:list"
	catalogFetchMax = 100 // с запасом под фильтрацию, limit применяется после
)

// ListOptions — параметры выдачи каталога.
type ListOptions struct {
	Limit  int
	Query  string
	Sort   query.SortKey
	Source string // фильтр по статусу, пустой — без фильтра
}

// CatalogService — каталог датасетов OSDR: список, поиск, сортировка,
// синхронизация и экспорт.
type CatalogService interface {
	List(ctx context.Context, opts ListOptions) ([]models.CatalogItem, error)
	Sync(ctx context.Context) (int, error)
	Export(ctx context.Context, format string) (string, error)
}

type catalogService struct {
	accessor  *cache.Accessor
	client    clients.ReadingsClient
	outputDir string
}

func NewCatalogService(accessor *cache.Accessor, client clients.ReadingsClient, outputDir string) CatalogService {
	return &catalogService{
		accessor:  accessor,
		client:    client,
		outputDir: outputDir,
	}
}

// fetchAll возвращает материализованный каталог (из кэша или upstream).
func (s *catalogService) fetchAll(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := s.accessor.GetOrCompute(ctx, cacheKeyCatalog, catalogTTL, &items,
		func(ctx context.Context) (interface{}, error) {
			raw, err := s.client.ListCatalog(ctx, catalogFetchMax)
			if err != nil {
				return nil, fmt.Errorf("fetch catalog: %w", err)
			}

			data := clients.UnwrapData(raw)
			rawItems, _ := data["items"].([]interface{})

			mapped := make([]models.CatalogItem, 0, len(rawItems))
			for _, it := range rawItems {
				if m, ok := it.(map[string]interface{}); ok {
					mapped = append(mapped, models.CatalogItemFromMap(m))
				}
			}
			return mapped, nil
		})
	return items, err
}

func (s *catalogService) List(ctx context.Context, opts ListOptions) ([]models.CatalogItem, error) {
	items, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	// Запросы короче 2 символов не фильтруют выдачу
	if len(opts.Query) >= 2 {
		items = query.Search(items, opts.Query, query.TitleField, query.DatasetIDField)
	}
	if opts.Source != "" {
		items = query.FilterByStatus(items, opts.Source)
	}

	items = query.SortItems(items, opts.Sort)
	return query.Take(items, opts.Limit), nil
}

// Sync запускает синхронизацию на upstream и сбрасывает кэш каталога.
// Возвращает число записанных upstream'ом позиций.
func (s *catalogService) Sync(ctx context.Context) (int, error) {
	raw, err := s.client.SyncCatalog(ctx)
	if err != nil {
		return 0, fmt.Errorf("sync catalog: %w", err)
	}

	s.accessor.Invalidate(ctx, cacheKeyCatalog)

	data := clients.UnwrapData(raw)
	return models.ExtractInt(data, "written"), nil
}
