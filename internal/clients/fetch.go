package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"andromeda/internal/logger"

	"github.com/cenkalti/backoff/v4"
)

const userAgent = "Andromeda-Dashboard/1.0"

// FetchError — любая неудача при обращении к внешнему API: сетевая ошибка,
// таймаут, статус >= 400 или непарсящийся JSON. Status == 0 означает, что
// ответа не было вовсе.
type FetchError struct {
	Status  int
	Message string
}

func (e *FetchError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream fetch failed: %s", e.Message)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Message)
}

// FetchStatus достаёт HTTP-статус из ошибки, 0 если это не FetchError.
func FetchStatus(err error) int {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Status
	}
	return 0
}

// getJSON выполняет GET с ограниченным числом повторов. Повторяются только
// сетевые ошибки и 5xx; 4xx возвращается сразу. Тело декодируется в
// произвольное JSON-значение (объект или массив).
func getJSON(ctx context.Context, hc *http.Client, reqURL string, headers map[string]string, maxRetries int, interval time.Duration) (interface{}, error) {
	log := logger.WithComponent("clients")

	var result interface{}
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
		if err != nil {
			return backoff.Permanent(&FetchError{Status: 0, Message: err.Error()})
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := hc.Do(req)
		if err != nil {
			log.Warnf("fetch %s: no response: %v", req.URL.Host, err)
			return &FetchError{Status: 0, Message: err.Error()}
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return &FetchError{Status: resp.StatusCode, Message: "read body: " + err.Error()}
		}

		log.Debugf("fetch %s: status=%d length=%d", req.URL.Host, resp.StatusCode, len(body))

		if resp.StatusCode >= 500 {
			return &FetchError{Status: resp.StatusCode, Message: "server error"}
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(&FetchError{Status: resp.StatusCode, Message: "client error"})
		}

		// Непарсящееся тело приравнивается к сбою запроса
		var decoded interface{}
		if err := json.Unmarshal(body, &decoded); err != nil {
			return backoff.Permanent(&FetchError{Status: resp.StatusCode, Message: "invalid JSON: " + err.Error()})
		}
		result = decoded
		return nil
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), uint64(maxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, b); err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, &FetchError{Status: 0, Message: err.Error()}
	}
	return result, nil
}

// getJSONMap — как getJSON, но гарантирует объект на верхнем уровне.
func getJSONMap(ctx context.Context, hc *http.Client, reqURL string, headers map[string]string, maxRetries int, interval time.Duration) (map[string]interface{}, error) {
	decoded, err := getJSON(ctx, hc, reqURL, headers, maxRetries, interval)
	if err != nil {
		return nil, err
	}
	m, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, &FetchError{Status: 0, Message: "unexpected top-level JSON shape"}
	}
	return m, nil
}

// UnwrapData возвращает объект из поля data, либо сам объект, если обёртки
// нет. Upstream отвечает и в обёрнутом, и в плоском виде.
func UnwrapData(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	if data, ok := m["data"].(map[string]interface{}); ok {
		return data
	}
	return m
}
