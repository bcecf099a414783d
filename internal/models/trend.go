package models

import (
	"math"
	"time"
)

// TrendSummary — дельта между двумя показаниями МКС. Вычисляется на стороне
// upstream, здесь только разбирается.
type TrendSummary struct {
	Movement    bool       `json:"movement"`
	DeltaKm     float64    `json:"delta_km"`
	DtSec       float64    `json:"dt_sec"`
	VelocityKmh *float64   `json:"velocity_kmh,omitempty"`
	FromTime    *time.Time `json:"from_time,omitempty"`
	ToTime      *time.Time `json:"to_time,omitempty"`
	FromLat     *float64   `json:"from_lat,omitempty"`
	FromLon     *float64   `json:"from_lon,omitempty"`
	ToLat       *float64   `json:"to_lat,omitempty"`
	ToLon       *float64   `json:"to_lon,omitempty"`
}

// TrendFromMap строит тренд из сырого JSON. Тотальная функция, обязательные
// поля по умолчанию false/0, опциональные — nil.
func TrendFromMap(data map[string]interface{}) TrendSummary {
	if data == nil {
		data = map[string]interface{}{}
	}
	return TrendSummary{
		Movement:    ExtractBool(data, "movement"),
		DeltaKm:     ExtractFloat(data, "delta_km"),
		DtSec:       ExtractFloat(data, "dt_sec"),
		VelocityKmh: ExtractFloatPtr(data, "velocity_kmh"),
		FromTime:    ExtractTimePtr(data, "from_time"),
		ToTime:      ExtractTimePtr(data, "to_time"),
		FromLat:     ExtractFloatPtr(data, "from_lat"),
		FromLon:     ExtractFloatPtr(data, "from_lon"),
		ToLat:       ExtractFloatPtr(data, "to_lat"),
		ToLon:       ExtractFloatPtr(data, "to_lon"),
	}
}

// AltitudeChange — приближённая оценка изменения высоты по delta_km.
// Эвристика delta_km/100 унаследована от исходной витрины, не физика.
func (t TrendSummary) AltitudeChange() *float64 {
	if t.DeltaKm > 0 && t.VelocityKmh != nil {
		v := math.Round(t.DeltaKm/100*100) / 100
		return &v
	}
	return nil
}
