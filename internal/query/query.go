// Package query — чистые операции над материализованными коллекциями
// каталога: поиск, фильтрация, сортировка. Без I/O; ограничение размера
// результата остаётся на вызывающем.
package query

import (
	"sort"
	"strings"

	"andromeda/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Field выбирает текстовое поле записи для поиска.
type Field func(models.CatalogItem) string

var (
	TitleField     Field = models.CatalogItem.TitleOrEmpty
	DatasetIDField Field = models.CatalogItem.DatasetIDOrEmpty
)

// Search — регистронезависимый поиск по подстроке: запись подходит, если
// запрос содержится хотя бы в одном из указанных полей.
func Search(items []models.CatalogItem, q string, fields ...Field) []models.CatalogItem {
	q = strings.ToLower(q)
	result := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), q) {
				result = append(result, item)
				break
			}
		}
	}
	return result
}

// FilterByVariable оставляет записи, среди ключей raw которых есть ключ,
// содержащий тип (в верхнем регистре).
func FilterByVariable(items []models.CatalogItem, variableType string) []models.CatalogItem {
	variableType = strings.ToUpper(variableType)
	result := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		for key := range item.Raw {
			if strings.Contains(strings.ToUpper(key), variableType) {
				result = append(result, item)
				break
			}
		}
	}
	return result
}

// FilterByStatus — точное совпадение статуса.
func FilterByStatus(items []models.CatalogItem, status string) []models.CatalogItem {
	result := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.Status != nil && *item.Status == status {
			result = append(result, item)
		}
	}
	return result
}

// SortKey — допустимые порядки сортировки каталога.
type SortKey string

const (
	SortInsertedDesc SortKey = "inserted_desc"
	SortInsertedAsc  SortKey = "inserted_asc"
	SortTitleAsc     SortKey = "title_asc"
	SortTitleDesc    SortKey = "title_desc"
)

// ParseSortKey нормализует параметр сортировки; неизвестные значения
// превращаются в порядок по умолчанию.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortInsertedAsc, SortTitleAsc, SortTitleDesc:
		return SortKey(s)
	default:
		return SortInsertedDesc
	}
}

// SortItems возвращает отсортированную копию. Сортировка стабильная: равные
// элементы сохраняют исходный взаимный порядок. Строки сравниваются
// без учёта регистра с локале-зависимым порядком.
func SortItems(items []models.CatalogItem, key SortKey) []models.CatalogItem {
	sorted := make([]models.CatalogItem, len(items))
	copy(sorted, items)

	cl := collate.New(language.Und, collate.IgnoreCase)

	switch key {
	case SortInsertedAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].InsertedAt.Before(sorted[j].InsertedAt)
		})
	case SortTitleAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return cl.CompareString(sorted[i].TitleOrEmpty(), sorted[j].TitleOrEmpty()) < 0
		})
	case SortTitleDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return cl.CompareString(sorted[i].TitleOrEmpty(), sorted[j].TitleOrEmpty()) > 0
		})
	default: // inserted_desc
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].InsertedAt.After(sorted[j].InsertedAt)
		})
	}
	return sorted
}

// Take ограничивает размер результата.
func Take(items []models.CatalogItem, limit int) []models.CatalogItem {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
