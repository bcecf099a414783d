package handlers

import (
	"net/http"
	"sort"

	"andromeda/internal/service"

	"github.com/gin-gonic/gin"
)

type SpaceHandler struct {
	service service.SpaceService
}

func NewSpaceHandler(service service.SpaceService) *SpaceHandler {
	return &SpaceHandler{service: service}
}

func (h *SpaceHandler) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.service.Summary(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to get space summary",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}

func (h *SpaceHandler) GetLatest(c *gin.Context) {
	ctx := c.Request.Context()
	source := c.Param("source")

	latest, err := h.service.Latest(ctx, source)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to get latest data for source",
			"source":  source,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"source":  source,
		"data":    latest,
	})
}

func (h *SpaceHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	source := c.Param("source")

	if err := h.service.Refresh(ctx, source); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to refresh source",
			"source":  source,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"source":  source,
		"message": "source refreshed successfully",
	})
}

// GetSources отдает справочник источников со статусом каждого. Недоступный
// источник не роняет список, он просто показывается без статуса.
func (h *SpaceHandler) GetSources(c *gin.Context) {
	ctx := c.Request.Context()

	sources := h.service.Sources()

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]gin.H, 0, len(names))
	for _, name := range names {
		entry := gin.H{
			"source": name,
			"title":  sources[name],
		}
		if status, err := h.service.Status(ctx, name); err == nil {
			entry["status"] = status
		}
		list = append(list, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    list,
		"count":   len(list),
	})
}
