package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"andromeda/internal/query"
	"andromeda/internal/service"

	"github.com/gin-gonic/gin"
)

type OSDRHandler struct {
	service service.CatalogService
}

func NewOSDRHandler(service service.CatalogService) *OSDRHandler {
	return &OSDRHandler{service: service}
}

func (h *OSDRHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	limit := 20 // значение по умолчанию
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	// Запрос короче двух символов не фильтрует выдачу
	q := strings.TrimSpace(c.Query("q"))
	if len(q) < 2 {
		q = ""
	}

	items, err := h.service.List(ctx, service.ListOptions{
		Limit:  limit,
		Query:  q,
		Sort:   query.ParseSortKey(c.DefaultQuery("sort", "inserted_desc")),
		Source: c.Query("source"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to get OSDR catalog",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"count":   len(items),
	})
}

func (h *OSDRHandler) Sync(c *gin.Context) {
	ctx := c.Request.Context()

	written, err := h.service.Sync(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to sync OSDR catalog",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"written": written,
	})
}

func (h *OSDRHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	format := c.DefaultQuery("format", "xlsx")

	path, err := h.service.Export(ctx, format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to export catalog",
			"message": err.Error(),
		})
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}
