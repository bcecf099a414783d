package models

import (
	"fmt"
	"time"
)

var timeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ExtractString возвращает первое непустое строковое значение по списку ключей.
func ExtractString(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if val, ok := data[key]; ok {
			if str, ok := val.(string); ok && str != "" {
				return str
			}
		}
	}
	return ""
}

// ExtractFloat возвращает числовое значение по списку ключей, 0 если нет.
func ExtractFloat(data map[string]interface{}, keys ...string) float64 {
	f, _ := extractFloatOk(data, keys...)
	return f
}

// ExtractFloatPtr — как ExtractFloat, но отличает «нет значения» от нуля.
func ExtractFloatPtr(data map[string]interface{}, keys ...string) *float64 {
	if f, ok := extractFloatOk(data, keys...); ok {
		return &f
	}
	return nil
}

func extractFloatOk(data map[string]interface{}, keys ...string) (float64, bool) {
	for _, key := range keys {
		if val, ok := data[key]; ok {
			switch v := val.(type) {
			case float64:
				return v, true
			case float32:
				return float64(v), true
			case int:
				return float64(v), true
			case string:
				var f float64
				if _, err := fmt.Sscanf(v, "%f", &f); err == nil {
					return f, true
				}
			}
		}
	}
	return 0, false
}

// ExtractInt возвращает целое значение, 0 если ключа нет.
func ExtractInt(data map[string]interface{}, keys ...string) int {
	if f, ok := extractFloatOk(data, keys...); ok {
		return int(f)
	}
	return 0
}

// ExtractBool возвращает булево значение, false если ключа нет.
func ExtractBool(data map[string]interface{}, key string) bool {
	if val, ok := data[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

// ParseTime разбирает ISO-8601 строку; (zero, false) если не разобралась.
func ParseTime(value string) (time.Time, bool) {
	for _, format := range timeFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ExtractTime — обязательная временная метка: при отсутствии или ошибке
// разбора возвращается текущее время.
func ExtractTime(data map[string]interface{}, keys ...string) time.Time {
	if t := ExtractTimePtr(data, keys...); t != nil {
		return *t
	}
	return time.Now().UTC()
}

// ExtractTimePtr — опциональная временная метка: nil при отсутствии или
// ошибке разбора.
func ExtractTimePtr(data map[string]interface{}, keys ...string) *time.Time {
	for _, key := range keys {
		if val, ok := data[key]; ok {
			switch v := val.(type) {
			case string:
				if t, ok := ParseTime(v); ok {
					return &t
				}
			case float64:
				t := time.Unix(int64(v), 0).UTC()
				return &t
			}
		}
	}
	return nil
}

// ExtractMap возвращает вложенный объект, пустой map если ключа нет.
func ExtractMap(data map[string]interface{}, key string) map[string]interface{} {
	if val, ok := data[key]; ok {
		if m, ok := val.(map[string]interface{}); ok {
			return m
		}
	}
	return map[string]interface{}{}
}

// ExtractStringPtr — опциональная строка: nil при отсутствии.
func ExtractStringPtr(data map[string]interface{}, keys ...string) *string {
	if s := ExtractString(data, keys...); s != "" {
		return &s
	}
	return nil
}
