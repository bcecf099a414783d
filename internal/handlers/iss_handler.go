package handlers

import (
	"net/http"

	"andromeda/internal/service"

	"github.com/gin-gonic/gin"
)

type ISSHandler struct {
	service service.ReadingsService
}

func NewISSHandler(service service.ReadingsService) *ISSHandler {
	return &ISSHandler{service: service}
}

func (h *ISSHandler) GetLast(c *gin.Context) {
	ctx := c.Request.Context()

	reading, err := h.service.GetLastReading(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to get ISS reading",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reading,
	})
}

func (h *ISSHandler) GetTrend(c *gin.Context) {
	ctx := c.Request.Context()

	trend, err := h.service.GetTrend(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to get ISS trend",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    trend,
	})
}

func (h *ISSHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	reading, err := h.service.Refresh(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to refresh ISS data",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "ISS data refreshed successfully",
		"data":    reading,
	})
}
