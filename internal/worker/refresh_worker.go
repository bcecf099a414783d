package worker

import (
	"context"
	"time"

	"andromeda/internal/logger"
	"andromeda/internal/service"
)

// RefreshWorker периодически дергает обновление показаний МКС, чтобы кэш
// оставался теплым между запросами пользователей.
type RefreshWorker struct {
	readings  service.ReadingsService
	interval  time.Duration
	stopChan  chan struct{}
	isRunning bool
}

func NewRefreshWorker(readings service.ReadingsService, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		readings: readings,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (w *RefreshWorker) Start() {
	if w.isRunning {
		return
	}

	w.isRunning = true
	logger.WithComponent("refresh-worker").Infof("refresh worker started with interval %v", w.interval)

	go w.run()
}

func (w *RefreshWorker) Stop() {
	if !w.isRunning {
		return
	}

	close(w.stopChan)
	w.isRunning = false
	logger.WithComponent("refresh-worker").Info("refresh worker stopped")
}

func (w *RefreshWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Первый запуск сразу
	w.refresh()

	for {
		select {
		case <-ticker.C:
			w.refresh()
		case <-w.stopChan:
			return
		}
	}
}

func (w *RefreshWorker) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := w.readings.Refresh(ctx); err != nil {
		logger.WithComponent("refresh-worker").Errorf("readings refresh failed: %v", err)
	} else {
		logger.WithComponent("refresh-worker").Debug("readings refreshed")
	}
}
