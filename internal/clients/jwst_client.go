package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type JWSTClient interface {
	Get(ctx context.Context, path string, params map[string]string) (map[string]interface{}, error)
}

type jwstClient struct {
	host   string
	apiKey string
	email  string
	client *http.Client
}

type JWSTConfig struct {
	Host    string
	APIKey  string
	Email   string
	Timeout time.Duration
}

func NewJWSTClient(config JWSTConfig) JWSTClient {
	if config.Timeout <= 0 {
		config.Timeout = 20 * time.Second
	}
	return &jwstClient{
		host:   config.Host,
		apiKey: config.APIKey,
		email:  config.Email,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

func (c *jwstClient) Get(ctx context.Context, path string, params map[string]string) (map[string]interface{}, error) {
	reqURL := fmt.Sprintf("%s/%s", c.host, path)
	if len(params) > 0 {
		query := url.Values{}
		for key, value := range params {
			query.Set(key, value)
		}
		reqURL += "?" + query.Encode()
	}

	headers := map[string]string{"x-api-key": c.apiKey}
	if c.email != "" {
		headers["email"] = c.email
	}

	decoded, err := getJSON(ctx, c.client, reqURL, headers, 0, 0)
	if err != nil {
		return nil, err
	}
	switch v := decoded.(type) {
	case map[string]interface{}:
		return v, nil
	case []interface{}:
		// Галерея иногда отдаёт список снимков без обёртки
		return map[string]interface{}{"body": v}, nil
	default:
		return nil, &FetchError{Status: 0, Message: "unexpected top-level JSON shape"}
	}
}
