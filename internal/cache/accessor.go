package cache

import (
	"context"
	"encoding/json"
	"time"

	"andromeda/internal/logger"

	"golang.org/x/sync/singleflight"
)

// Accessor — сквозной доступ к кэшу: промах вызывает producer ровно один раз
// на ключ даже при конкурентных запросах (singleflight). Ошибка producer не
// кэшируется и отдаётся вызывающему как есть.
type Accessor struct {
	store Store
	group singleflight.Group
}

func NewAccessor(store Store) *Accessor {
	return &Accessor{store: store}
}

// GetOrCompute кладёт живое значение из кэша в dest; при промахе вызывает
// producer, сохраняет результат под ключом с данным TTL и также кладёт его
// в dest.
func (a *Accessor) GetOrCompute(ctx context.Context, key string, ttl time.Duration, dest interface{}, producer func(ctx context.Context) (interface{}, error)) error {
	if found, err := a.store.GetJSON(ctx, key, dest); err == nil && found {
		return nil
	} else if err != nil {
		logger.WithComponent("cache").Warnf("cache read failed for %s: %v", key, err)
	}

	raw, err, _ := a.group.Do(key, func() (interface{}, error) {
		// Пока мы ждали очередь, значение могло появиться
		var data json.RawMessage
		if found, err := a.store.GetJSON(ctx, key, &data); err == nil && found {
			return []byte(data), nil
		}

		value, err := producer(ctx)
		if err != nil {
			return nil, err
		}

		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}

		if err := a.store.Set(ctx, key, encoded, ttl); err != nil {
			logger.WithComponent("cache").Warnf("cache write failed for %s: %v", key, err)
		}
		return encoded, nil
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(raw.([]byte), dest)
}

// Invalidate удаляет запись немедленно, не дожидаясь TTL.
func (a *Accessor) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := a.store.Delete(ctx, key); err != nil {
			logger.WithComponent("cache").Warnf("cache invalidate failed for %s: %v", key, err)
		}
	}
}

// Store открывает нижележащее хранилище (нужно сервисам для простых флагов).
func (a *Accessor) Store() Store {
	return a.store
}
