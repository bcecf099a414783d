package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJWSTGetAcceptsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"location": "https://img/a.jpg", "observation_id": "o1"}]`))
	}))
	defer srv.Close()

	client := NewJWSTClient(JWSTConfig{Host: srv.URL, APIKey: "k"})
	m, err := client.Get(context.Background(), "all/type/jpg", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	// Голый массив заворачивается в body, как будто обёртка была
	list, ok := m["body"].([]interface{})
	if !ok {
		t.Fatalf("body = %T, want []interface{}", m["body"])
	}
	if len(list) != 1 {
		t.Fatalf("len(body) = %d, want 1", len(list))
	}
	item, _ := list[0].(map[string]interface{})
	if item["observation_id"] != "o1" {
		t.Errorf("item = %v", item)
	}
}

func TestJWSTGetPassesObjectThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "k" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"body": [], "total": 0}`))
	}))
	defer srv.Close()

	client := NewJWSTClient(JWSTConfig{Host: srv.URL, APIKey: "k"})
	m, err := client.Get(context.Background(), "all/type/jpg", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, ok := m["body"]; !ok {
		t.Errorf("body missing: %v", m)
	}
}
