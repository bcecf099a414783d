package models

import (
	"time"
)

// CatalogItem — запись датасета OSDR. Поле Raw — непрозрачный blob: кроме
// поиска REST-ссылки его схема не интерпретируется.
type CatalogItem struct {
	ID         int                    `json:"id"`
	DatasetID  *string                `json:"dataset_id,omitempty"`
	Title      *string                `json:"title,omitempty"`
	Status     *string                `json:"status,omitempty"`
	UpdatedAt  *time.Time             `json:"updated_at,omitempty"`
	InsertedAt time.Time              `json:"inserted_at"`
	Raw        map[string]interface{} `json:"raw"`
}

// CatalogItemFromMap строит запись каталога из сырого JSON. Тотальная
// функция с документированными умолчаниями.
func CatalogItemFromMap(data map[string]interface{}) CatalogItem {
	if data == nil {
		data = map[string]interface{}{}
	}
	return CatalogItem{
		ID:         ExtractInt(data, "id"),
		DatasetID:  ExtractStringPtr(data, "dataset_id"),
		Title:      ExtractStringPtr(data, "title"),
		Status:     ExtractStringPtr(data, "status"),
		UpdatedAt:  ExtractTimePtr(data, "updated_at"),
		InsertedAt: ExtractTime(data, "inserted_at"),
		Raw:        ExtractMap(data, "raw"),
	}
}

// RestURL ищет REST-ссылку в raw. Приоритет написаний фиксированный:
// REST_URL, затем rest_url, затем rest.
func (c CatalogItem) RestURL() *string {
	for _, key := range []string{"REST_URL", "rest_url", "rest"} {
		if val, ok := c.Raw[key]; ok {
			if s, ok := val.(string); ok && s != "" {
				return &s
			}
		}
	}
	return nil
}

// TitleOrEmpty — заголовок для поиска и сортировки.
func (c CatalogItem) TitleOrEmpty() string {
	if c.Title != nil {
		return *c.Title
	}
	return ""
}

// DatasetIDOrEmpty — идентификатор датасета для поиска.
func (c CatalogItem) DatasetIDOrEmpty() string {
	if c.DatasetID != nil {
		return *c.DatasetID
	}
	return ""
}
