package models

// AstronomyEvent — нормализованное астрономическое событие.
type AstronomyEvent struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // HH:MM:SS
	Type        string `json:"type"`
	Description string `json:"description"`
}

// MoonPhase — фаза Луны на дату.
type MoonPhase struct {
	Phase string `json:"phase"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

// SunEvent — восход или закат Солнца.
type SunEvent struct {
	Type string `json:"type"` // Sunrise | Sunset
	Date string `json:"date"`
	Time string `json:"time"`
}
