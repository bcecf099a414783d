package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ReadingsClient — клиент rust_iss-совместимого сервиса: телеметрия МКС,
// каталог OSDR и универсальный кэш космических источников.
type ReadingsClient interface {
	GetLast(ctx context.Context) (map[string]interface{}, error)
	GetTrend(ctx context.Context) (map[string]interface{}, error)
	TriggerFetch(ctx context.Context) (map[string]interface{}, error)
	ListCatalog(ctx context.Context, limit int) (map[string]interface{}, error)
	SyncCatalog(ctx context.Context) (map[string]interface{}, error)
	SpaceLatest(ctx context.Context, source string) (map[string]interface{}, error)
	SpaceRefresh(ctx context.Context, source string) error
	SpaceSummary(ctx context.Context) (map[string]interface{}, error)
}

type readingsClient struct {
	baseURL       string
	maxRetries    int
	retryBackoff  time.Duration
	client        *http.Client
	catalogClient *http.Client
}

type ReadingsConfig struct {
	BaseURL        string
	Timeout        time.Duration
	CatalogTimeout time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
}

func NewReadingsClient(config ReadingsConfig) ReadingsClient {
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if config.CatalogTimeout <= 0 {
		config.CatalogTimeout = 10 * time.Second
	}
	if config.RetryBackoff <= 0 {
		config.RetryBackoff = 100 * time.Millisecond
	}
	return &readingsClient{
		baseURL:      config.BaseURL,
		maxRetries:   config.MaxRetries,
		retryBackoff: config.RetryBackoff,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		// Каталог отвечает медленнее, таймаут отдельный
		catalogClient: &http.Client{
			Timeout: config.CatalogTimeout,
		},
	}
}

func (c *readingsClient) GetLast(ctx context.Context) (map[string]interface{}, error) {
	return getJSONMap(ctx, c.client, c.baseURL+"/last", nil, c.maxRetries, c.retryBackoff)
}

func (c *readingsClient) GetTrend(ctx context.Context) (map[string]interface{}, error) {
	return getJSONMap(ctx, c.client, c.baseURL+"/iss/trend", nil, c.maxRetries, c.retryBackoff)
}

func (c *readingsClient) TriggerFetch(ctx context.Context) (map[string]interface{}, error) {
	return getJSONMap(ctx, c.client, c.baseURL+"/fetch", nil, c.maxRetries, c.retryBackoff)
}

func (c *readingsClient) ListCatalog(ctx context.Context, limit int) (map[string]interface{}, error) {
	reqURL := fmt.Sprintf("%s/osdr/list?limit=%d", c.baseURL, limit)
	return getJSONMap(ctx, c.catalogClient, reqURL, nil, c.maxRetries, c.retryBackoff)
}

func (c *readingsClient) SyncCatalog(ctx context.Context) (map[string]interface{}, error) {
	return getJSONMap(ctx, c.catalogClient, c.baseURL+"/osdr/sync", nil, c.maxRetries, c.retryBackoff)
}

func (c *readingsClient) SpaceLatest(ctx context.Context, source string) (map[string]interface{}, error) {
	reqURL := fmt.Sprintf("%s/space/%s/latest", c.baseURL, url.PathEscape(source))
	return getJSONMap(ctx, c.catalogClient, reqURL, nil, c.maxRetries, c.retryBackoff)
}

func (c *readingsClient) SpaceRefresh(ctx context.Context, source string) error {
	reqURL := fmt.Sprintf("%s/space/refresh?src=%s", c.baseURL, url.QueryEscape(source))
	_, err := getJSONMap(ctx, c.catalogClient, reqURL, nil, c.maxRetries, c.retryBackoff)
	return err
}

func (c *readingsClient) SpaceSummary(ctx context.Context) (map[string]interface{}, error) {
	return getJSONMap(ctx, c.catalogClient, c.baseURL+"/space/summary", nil, c.maxRetries, c.retryBackoff)
}
