package models

import (
	"time"
)

// PositionReading — одно показание телеметрии МКС. Неизменяемо после
// создания; payload хранится как есть, доступ к полям через аксессоры.
type PositionReading struct {
	ID        int                    `json:"id"`
	FetchedAt time.Time              `json:"fetched_at"`
	SourceURL string                 `json:"source_url"`
	Payload   map[string]interface{} `json:"payload"`
}

// ReadingFromMap строит показание из сырого JSON-объекта. Тотальная функция:
// отсутствующие поля получают значения по умолчанию (id → 0, fetched_at →
// текущее время, payload → пустой объект).
func ReadingFromMap(data map[string]interface{}) PositionReading {
	if data == nil {
		data = map[string]interface{}{}
	}
	return PositionReading{
		ID:        ExtractInt(data, "id"),
		FetchedAt: ExtractTime(data, "fetched_at"),
		SourceURL: ExtractString(data, "source_url"),
		Payload:   ExtractMap(data, "payload"),
	}
}

func (r PositionReading) Latitude() *float64 {
	return ExtractFloatPtr(r.Payload, "latitude")
}

func (r PositionReading) Longitude() *float64 {
	return ExtractFloatPtr(r.Payload, "longitude")
}

func (r PositionReading) Velocity() *float64 {
	return ExtractFloatPtr(r.Payload, "velocity")
}

func (r PositionReading) Altitude() *float64 {
	return ExtractFloatPtr(r.Payload, "altitude")
}
