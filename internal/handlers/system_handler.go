package handlers

import (
	"net/http"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gin-gonic/gin"

	"andromeda/internal/config"
	"andromeda/pkg/redis"
)

type SystemHandler struct {
	cfg         *config.Config
	redisClient *goredis.Client
	startedAt   time.Time
}

// NewSystemHandler: redisClient может быть nil, тогда в статистике
// отражается работа на in-memory кэше.
func NewSystemHandler(cfg *config.Config, redisClient *goredis.Client) *SystemHandler {
	return &SystemHandler{
		cfg:         cfg,
		redisClient: redisClient,
		startedAt:   time.Now().UTC(),
	}
}

func (h *SystemHandler) Health(c *gin.Context) {
	cacheStatus := "memory"
	if h.redisClient != nil {
		cacheStatus = "redis"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services": gin.H{
			"cache":     cacheStatus,
			"iss_api":   "enabled",
			"astro_api": astroState(h.cfg.HasAstroCredentials()),
			"jwst_api":  jwstState(h.cfg.JWST.APIKey != ""),
		},
	})
}

func (h *SystemHandler) Stats(c *gin.Context) {
	stats := gin.H{
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"workers": gin.H{
			"refresh_enabled": h.cfg.Workers.RefreshEnabled,
		},
	}

	if h.redisClient != nil {
		redisStats, err := redis.GetStats(h.redisClient)
		if err != nil {
			stats["redis"] = gin.H{"error": err.Error()}
		} else {
			stats["redis"] = redisStats
		}
	} else {
		stats["cache"] = "memory"
	}

	c.JSON(http.StatusOK, stats)
}

func astroState(hasCreds bool) string {
	if hasCreds {
		return "enabled"
	}
	return "mock"
}

func jwstState(hasKey bool) string {
	if hasKey {
		return "enabled"
	}
	return "disabled"
}
