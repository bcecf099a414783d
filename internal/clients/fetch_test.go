package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetJSONRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	m, err := getJSONMap(context.Background(), srv.Client(), srv.URL, nil, 3, time.Millisecond)
	if err != nil {
		t.Fatalf("getJSONMap: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if ok, _ := m["ok"].(bool); !ok {
		t.Errorf("body = %v", m)
	}
}

func TestGetJSONDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := getJSONMap(context.Background(), srv.Client(), srv.URL, nil, 3, time.Millisecond)
	if err == nil {
		t.Fatal("want error for 404")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (4xx не повторяется)", attempts)
	}
	if status := FetchStatus(err); status != http.StatusNotFound {
		t.Errorf("FetchStatus = %d, want 404", status)
	}
}

func TestGetJSONExhaustsRetries(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := getJSONMap(context.Background(), srv.Client(), srv.URL, nil, 2, time.Millisecond)
	if err == nil {
		t.Fatal("want error after exhausted retries")
	}
	// Первая попытка плюс два повтора
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if status := FetchStatus(err); status != http.StatusInternalServerError {
		t.Errorf("FetchStatus = %d, want 500", status)
	}
}

func TestGetJSONInvalidBodyIsFetchError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := getJSONMap(context.Background(), srv.Client(), srv.URL, nil, 3, time.Millisecond)
	if err == nil {
		t.Fatal("want error for invalid JSON")
	}
	// Битое тело — сбой запроса, но повторять его бессмысленно
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
	if status := FetchStatus(err); status != http.StatusOK {
		t.Errorf("FetchStatus = %d, want 200", status)
	}
}

func TestGetJSONNoResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // сервер уже мёртв

	_, err := getJSONMap(context.Background(), &http.Client{Timeout: time.Second}, srv.URL, nil, 0, time.Millisecond)
	if err == nil {
		t.Fatal("want error when server is down")
	}
	if status := FetchStatus(err); status != 0 {
		t.Errorf("FetchStatus = %d, want 0 (ответа не было)", status)
	}
}

func TestFetchStatusNonFetchError(t *testing.T) {
	if status := FetchStatus(context.Canceled); status != 0 {
		t.Errorf("FetchStatus = %d, want 0", status)
	}
}

func TestGetJSONMapRejectsArrays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[1, 2, 3]`))
	}))
	defer srv.Close()

	_, err := getJSONMap(context.Background(), srv.Client(), srv.URL, nil, 0, time.Millisecond)
	if err == nil {
		t.Fatal("want error for top-level array")
	}
}

func TestUnwrapData(t *testing.T) {
	wrapped := map[string]interface{}{
		"data": map[string]interface{}{"value": 1.0},
	}
	if got := UnwrapData(wrapped); got["value"] != 1.0 {
		t.Errorf("UnwrapData(wrapped) = %v", got)
	}

	flat := map[string]interface{}{"value": 2.0}
	if got := UnwrapData(flat); got["value"] != 2.0 {
		t.Errorf("UnwrapData(flat) = %v", got)
	}

	// data не-объект: возвращается сам объект
	odd := map[string]interface{}{"data": "string"}
	if got := UnwrapData(odd); got["data"] != "string" {
		t.Errorf("UnwrapData(odd) = %v", got)
	}

	if got := UnwrapData(nil); got == nil || len(got) != 0 {
		t.Errorf("UnwrapData(nil) = %v, want пустой map", got)
	}
}
