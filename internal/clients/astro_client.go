package clients

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// PositionsQuery — параметры запроса позиций небесных тел.
type PositionsQuery struct {
	Lat       float64
	Lon       float64
	Elevation float64
	FromDate  string
	ToDate    string
	Time      string
}

type AstroClient interface {
	// BodyEvents запрашивает события (затмения, восходы/закаты) для тела.
	BodyEvents(ctx context.Context, body string, lat, lon float64, fromDate, toDate string) (map[string]interface{}, error)
	// Positions запрашивает позиции всех тел.
	Positions(ctx context.Context, q PositionsQuery) (map[string]interface{}, error)
	// BodyPositions запрашивает позиции конкретного тела в формате rows.
	BodyPositions(ctx context.Context, body string, q PositionsQuery) (map[string]interface{}, error)
}

type astroClient struct {
	appID   string
	secret  string
	baseURL string
	client  *http.Client
}

type AstroConfig struct {
	AppID   string
	Secret  string
	BaseURL string
	Timeout time.Duration
}

func NewAstroClient(config AstroConfig) AstroClient {
	if config.Timeout <= 0 {
		config.Timeout = 25 * time.Second
	}
	return &astroClient{
		appID:   config.AppID,
		secret:  config.Secret,
		baseURL: config.BaseURL,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

func (c *astroClient) authHeaders() map[string]string {
	auth := base64.StdEncoding.EncodeToString([]byte(c.appID + ":" + c.secret))
	return map[string]string{"Authorization": "Basic " + auth}
}

func (c *astroClient) BodyEvents(ctx context.Context, body string, lat, lon float64, fromDate, toDate string) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	params.Set("elevation", "0")
	params.Set("from_date", fromDate)
	params.Set("to_date", toDate)
	params.Set("time", "00:00:00")
	params.Set("output", "rows")

	reqURL := fmt.Sprintf("%s/bodies/events/%s?%s", c.baseURL, url.PathEscape(body), params.Encode())
	return getJSONMap(ctx, c.client, reqURL, c.authHeaders(), 0, 0)
}

func (c *astroClient) Positions(ctx context.Context, q PositionsQuery) (map[string]interface{}, error) {
	reqURL := fmt.Sprintf("%s/bodies/positions?%s", c.baseURL, q.encode(false))
	return getJSONMap(ctx, c.client, reqURL, c.authHeaders(), 0, 0)
}

func (c *astroClient) BodyPositions(ctx context.Context, body string, q PositionsQuery) (map[string]interface{}, error) {
	reqURL := fmt.Sprintf("%s/bodies/positions/%s?%s", c.baseURL, url.PathEscape(body), q.encode(true))
	return getJSONMap(ctx, c.client, reqURL, c.authHeaders(), 0, 0)
}

func (q PositionsQuery) encode(rows bool) string {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", q.Lat))
	params.Set("longitude", fmt.Sprintf("%f", q.Lon))
	params.Set("elevation", fmt.Sprintf("%g", q.Elevation))
	params.Set("from_date", q.FromDate)
	params.Set("to_date", q.ToDate)
	if q.Time != "" {
		params.Set("time", q.Time)
	} else {
		params.Set("time", "12:00:00")
	}
	if rows {
		params.Set("output", "rows")
	}
	return params.Encode()
}
