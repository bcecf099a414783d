package models

import (
	"testing"
	"time"
)

func TestCatalogItemFromMapDefaults(t *testing.T) {
	before := time.Now()
	item := CatalogItemFromMap(map[string]interface{}{})
	after := time.Now()

	if item.ID != 0 {
		t.Errorf("ID = %d, want 0", item.ID)
	}
	if item.DatasetID != nil {
		t.Errorf("DatasetID = %v, want nil", *item.DatasetID)
	}
	if item.Title != nil {
		t.Errorf("Title = %v, want nil", *item.Title)
	}
	if item.UpdatedAt != nil {
		t.Errorf("UpdatedAt = %v, want nil", *item.UpdatedAt)
	}
	if item.InsertedAt.Before(before) || item.InsertedAt.After(after) {
		t.Errorf("InsertedAt = %v, want между %v и %v", item.InsertedAt, before, after)
	}
	if item.Raw == nil || len(item.Raw) != 0 {
		t.Errorf("Raw = %v, want пустой map", item.Raw)
	}
}

func TestCatalogItemFromMapNil(t *testing.T) {
	item := CatalogItemFromMap(nil)
	if item.ID != 0 || item.Raw == nil {
		t.Errorf("nil на входе должен давать значения по умолчанию, got %+v", item)
	}
}

func TestCatalogItemFromMapFull(t *testing.T) {
	item := CatalogItemFromMap(map[string]interface{}{
		"id":          float64(42),
		"dataset_id":  "OSD-42",
		"title":       "Rodent Research",
		"status":      "active",
		"inserted_at": "2025-03-01T10:00:00Z",
		"updated_at":  "2025-03-02T11:30:00Z",
		"raw":         map[string]interface{}{"REST_URL": "https://osdr.nasa.gov/api/42"},
	})

	if item.ID != 42 {
		t.Errorf("ID = %d, want 42", item.ID)
	}
	if item.DatasetID == nil || *item.DatasetID != "OSD-42" {
		t.Errorf("DatasetID = %v, want OSD-42", item.DatasetID)
	}
	if item.InsertedAt.Format("2006-01-02") != "2025-03-01" {
		t.Errorf("InsertedAt = %v", item.InsertedAt)
	}
	if item.UpdatedAt == nil || item.UpdatedAt.Format("2006-01-02") != "2025-03-02" {
		t.Errorf("UpdatedAt = %v", item.UpdatedAt)
	}
}

func TestRestURLPrecedence(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		want string
	}{
		{
			name: "REST_URL выигрывает у остальных",
			raw: map[string]interface{}{
				"REST_URL": "https://a",
				"rest_url": "https://b",
				"rest":     "https://c",
			},
			want: "https://a",
		},
		{
			name: "rest_url выигрывает у rest",
			raw: map[string]interface{}{
				"rest_url": "https://b",
				"rest":     "https://c",
			},
			want: "https://b",
		},
		{
			name: "rest как последний вариант",
			raw:  map[string]interface{}{"rest": "https://c"},
			want: "https://c",
		},
		{
			name: "пустая строка пропускается",
			raw: map[string]interface{}{
				"REST_URL": "",
				"rest_url": "https://b",
			},
			want: "https://b",
		},
		{
			name: "нестроковое значение пропускается",
			raw: map[string]interface{}{
				"REST_URL": 123,
				"rest":     "https://c",
			},
			want: "https://c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := CatalogItem{Raw: tt.raw}
			got := item.RestURL()
			if got == nil {
				t.Fatalf("RestURL() = nil, want %q", tt.want)
			}
			if *got != tt.want {
				t.Errorf("RestURL() = %q, want %q", *got, tt.want)
			}
		})
	}
}

func TestRestURLMissing(t *testing.T) {
	item := CatalogItem{Raw: map[string]interface{}{"other": "x"}}
	if got := item.RestURL(); got != nil {
		t.Errorf("RestURL() = %q, want nil", *got)
	}
}
