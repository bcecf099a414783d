// Package astro нормализует ответы AstronomyAPI: несколько возможных форм
// JSON сводятся к единым событиям, фазам Луны и восходам/закатам, с
// детерминированной mock-подстановкой при недоступности API.
package astro

import (
	"fmt"
	"strings"
	"time"

	"andromeda/internal/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// EventsResponse — форма ответа /api/astro/events.
type EventsResponse struct {
	OK      bool                    `json:"ok"`
	Data    []models.AstronomyEvent `json:"data"`
	Moon    []models.MoonPhase      `json:"moon"`
	Sun     []models.SunEvent       `json:"sun"`
	Mock    bool                    `json:"mock,omitempty"`
	Message string                  `json:"message,omitempty"`
}

// BodyEvents — результат разбора ответа /bodies/events/{body}.
type BodyEvents struct {
	Events []models.AstronomyEvent
	Sun    []models.SunEvent
}

// ParseBodyEvents разбирает события тела. Формы пробуются по порядку:
// data.rows[].events[] (основная), затем data.table.rows[].cells[]
// (легаси), иначе событий нет — это не ошибка.
func ParseBodyEvents(payload map[string]interface{}, body, fromDate string) BodyEvents {
	var out BodyEvents

	events, ok := rowsShape(payload, "events")
	if !ok {
		events, _ = tableShape(payload)
	}

	for _, event := range events {
		normalizeEvent(event, body, fromDate, &out)
	}
	return out
}

// rowsShape достаёт элементы data.rows[].<field>[].
func rowsShape(payload map[string]interface{}, field string) ([]map[string]interface{}, bool) {
	data, ok := payload["data"].(map[string]interface{})
	if !ok {
		return nil, false
	}
	rows, ok := data["rows"].([]interface{})
	if !ok {
		return nil, false
	}

	var items []map[string]interface{}
	for _, r := range rows {
		row, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		entries, ok := row[field].([]interface{})
		if !ok {
			continue
		}
		for _, e := range entries {
			if m, ok := e.(map[string]interface{}); ok {
				// Дата строки наследуется элементами без собственной даты
				if _, has := m["date"]; !has {
					if rowDate, ok := row["date"].(string); ok {
						m = withDate(m, rowDate)
					}
				}
				items = append(items, m)
			}
		}
	}
	return items, true
}

// tableShape достаёт элементы data.table.rows[].cells[].
func tableShape(payload map[string]interface{}) ([]map[string]interface{}, bool) {
	data, ok := payload["data"].(map[string]interface{})
	if !ok {
		return nil, false
	}
	table, ok := data["table"].(map[string]interface{})
	if !ok {
		return nil, false
	}
	rows, ok := table["rows"].([]interface{})
	if !ok {
		return nil, false
	}

	var items []map[string]interface{}
	for _, r := range rows {
		row, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		cells, ok := row["cells"].([]interface{})
		if !ok {
			continue
		}
		for _, c := range cells {
			if m, ok := c.(map[string]interface{}); ok {
				items = append(items, m)
			}
		}
	}
	return items, true
}

func withDate(m map[string]interface{}, date string) map[string]interface{} {
	copied := make(map[string]interface{}, len(m)+1)
	for k, v := range m {
		copied[k] = v
	}
	copied["date"] = date
	return copied
}

func normalizeEvent(event map[string]interface{}, body, fromDate string, out *BodyEvents) {
	eventType := models.ExtractString(event, "type")
	if eventType == "" {
		eventType = "unknown"
	}

	switch {
	case strings.Contains(eventType, "eclipse"):
		date, tm := fromDate, "00:00:00"
		if peak := peakDate(event); peak != "" {
			if t, ok := models.ParseTime(peak); ok {
				date, tm = t.Format(dateLayout), t.Format(timeLayout)
			}
		}
		out.Events = append(out.Events, models.AstronomyEvent{
			Date:        date,
			Time:        tm,
			Type:        titleCase(eventType),
			Description: "Obscuration: " + obscuration(event),
		})

	case body == "sun":
		rise := models.ExtractString(event, "rise")
		if rise == "" {
			return
		}
		if t, ok := models.ParseTime(rise); ok {
			out.Sun = append(out.Sun, models.SunEvent{
				Type: "Sunrise",
				Date: t.Format(dateLayout),
				Time: t.Format(timeLayout),
			})
		}
		if set := models.ExtractString(event, "set"); set != "" {
			if t, ok := models.ParseTime(set); ok {
				out.Sun = append(out.Sun, models.SunEvent{
					Type: "Sunset",
					Date: t.Format(dateLayout),
					Time: t.Format(timeLayout),
				})
			}
		}
	}
}

func peakDate(event map[string]interface{}) string {
	highlights := models.ExtractMap(event, "eventHighlights")
	peak := models.ExtractMap(highlights, "peak")
	return models.ExtractString(peak, "date")
}

func obscuration(event map[string]interface{}) string {
	extra := models.ExtractMap(event, "extraInfo")
	if val, ok := extra["obscuration"]; ok {
		switch v := val.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%g", v)
		}
	}
	return "N/A"
}

// titleCase: "total_solar_eclipse" → "Total solar eclipse".
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseMoonPhases разбирает позиции Луны в фазы. Основная форма —
// data.rows[].positions[] с extraInfo.phase.string; легаси —
// data.table.rows[].cells[].
func ParseMoonPhases(payload map[string]interface{}) []models.MoonPhase {
	var phases []models.MoonPhase

	positions, ok := rowsShape(payload, "positions")
	if !ok {
		positions, _ = tableShape(payload)
	}

	for _, pos := range positions {
		extra := models.ExtractMap(pos, "extraInfo")
		phase := models.ExtractString(models.ExtractMap(extra, "phase"), "string")
		if phase == "" {
			continue
		}

		phaseDate := models.ExtractString(pos, "date")
		if phaseDate == "" {
			phaseDate = peakDate(pos)
		}
		if phaseDate == "" {
			continue
		}

		if t, ok := models.ParseTime(phaseDate); ok {
			phases = append(phases, models.MoonPhase{
				Phase: phase,
				Date:  t.Format(dateLayout),
				Time:  t.Format(timeLayout),
			})
		}
	}
	return phases
}

// ClampDateRange ограничивает диапазон позиций maxDays днями: запросы
// позиций дороги, upstream зовётся не дальше from+maxDays.
func ClampDateRange(fromDate, toDate string, maxDays int) string {
	from, err := time.Parse(dateLayout, fromDate)
	if err != nil {
		return toDate
	}
	to, err := time.Parse(dateLayout, toDate)
	if err != nil {
		return toDate
	}
	if int(to.Sub(from).Hours()/24) > maxDays {
		return from.AddDate(0, 0, maxDays).Format(dateLayout)
	}
	return toDate
}
