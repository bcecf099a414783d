package query

import (
	"testing"
	"time"

	"andromeda/internal/models"
)

func item(id int, title, datasetID string, insertedAt time.Time) models.CatalogItem {
	return models.CatalogItem{
		ID:         id,
		Title:      &title,
		DatasetID:  &datasetID,
		InsertedAt: insertedAt,
	}
}

func ids(items []models.CatalogItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSearchCaseInsensitive(t *testing.T) {
	now := time.Now()
	items := []models.CatalogItem{
		item(1, "Rodent Research-23", "OSD-100", now),
		item(2, "Plant Habitat", "OSD-200", now),
		item(3, "Microbial Tracking", "osd-rodent", now),
	}

	tests := []struct {
		name string
		q    string
		want []int
	}{
		{"нижний регистр по заголовку", "rodent", []int{1, 3}},
		{"верхний регистр", "RODENT", []int{1, 3}},
		{"по dataset id", "osd-200", []int{2}},
		{"нет совпадений", "jupiter", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(items, tt.q, TitleField, DatasetIDField)
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.q, ids(got), tt.want)
			}
		})
	}
}

func TestFilterByStatus(t *testing.T) {
	active, archived := "active", "archived"
	items := []models.CatalogItem{
		{ID: 1, Status: &active},
		{ID: 2, Status: &archived},
		{ID: 3},
		{ID: 4, Status: &active},
	}

	got := FilterByStatus(items, "active")
	if !equalIDs(ids(got), []int{1, 4}) {
		t.Errorf("FilterByStatus = %v, want [1 4]", ids(got))
	}
}

func TestFilterByVariable(t *testing.T) {
	items := []models.CatalogItem{
		{ID: 1, Raw: map[string]interface{}{"REST_URL": "x", "Temperature": 1}},
		{ID: 2, Raw: map[string]interface{}{"rest_url": "y"}},
	}

	got := FilterByVariable(items, "temperature")
	if !equalIDs(ids(got), []int{1}) {
		t.Errorf("FilterByVariable = %v, want [1]", ids(got))
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in   string
		want SortKey
	}{
		{"inserted_desc", SortInsertedDesc},
		{"inserted_asc", SortInsertedAsc},
		{"title_asc", SortTitleAsc},
		{"title_desc", SortTitleDesc},
		{"bogus", SortInsertedDesc},
		{"", SortInsertedDesc},
	}

	for _, tt := range tests {
		if got := ParseSortKey(tt.in); got != tt.want {
			t.Errorf("ParseSortKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSortItemsByInserted(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []models.CatalogItem{
		item(1, "a", "", base.Add(time.Hour)),
		item(2, "b", "", base.Add(3*time.Hour)),
		item(3, "c", "", base.Add(2*time.Hour)),
	}

	desc := SortItems(items, SortInsertedDesc)
	if !equalIDs(ids(desc), []int{2, 3, 1}) {
		t.Errorf("inserted_desc = %v, want [2 3 1]", ids(desc))
	}

	asc := SortItems(items, SortInsertedAsc)
	if !equalIDs(ids(asc), []int{1, 3, 2}) {
		t.Errorf("inserted_asc = %v, want [1 3 2]", ids(asc))
	}

	// Исходный срез не изменяется
	if !equalIDs(ids(items), []int{1, 2, 3}) {
		t.Errorf("SortItems изменил вход: %v", ids(items))
	}
}

func TestSortItemsStable(t *testing.T) {
	same := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []models.CatalogItem{
		item(2, "same title", "", same),
		item(3, "same title", "", same),
		item(1, "same title", "", same),
	}

	// Равные ключи сохраняют исходный взаимный порядок
	got := SortItems(items, SortTitleAsc)
	if !equalIDs(ids(got), []int{2, 3, 1}) {
		t.Errorf("стабильная сортировка = %v, want [2 3 1]", ids(got))
	}
}

func TestSortItemsTitleIgnoresCase(t *testing.T) {
	now := time.Now()
	items := []models.CatalogItem{
		item(1, "beta", "", now),
		item(2, "Alpha", "", now),
		item(3, "GAMMA", "", now),
	}

	got := SortItems(items, SortTitleAsc)
	if !equalIDs(ids(got), []int{2, 1, 3}) {
		t.Errorf("title_asc = %v, want [2 1 3]", ids(got))
	}
}

func TestTake(t *testing.T) {
	now := time.Now()
	items := []models.CatalogItem{
		item(1, "", "", now), item(2, "", "", now), item(3, "", "", now),
	}

	if got := Take(items, 2); len(got) != 2 {
		t.Errorf("Take(2) дал %d элементов", len(got))
	}
	if got := Take(items, 10); len(got) != 3 {
		t.Errorf("Take(10) дал %d элементов", len(got))
	}
	if got := Take(items, 0); len(got) != 3 {
		t.Errorf("Take(0) не должен резать, got %d", len(got))
	}
}
