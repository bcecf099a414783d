package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"andromeda/internal/service"

	"github.com/gin-gonic/gin"
)

type JWSTHandler struct {
	service service.JWSTService
}

func NewJWSTHandler(service service.JWSTService) *JWSTHandler {
	return &JWSTHandler{service: service}
}

func (h *JWSTHandler) GetFeed(c *gin.Context) {
	ctx := c.Request.Context()

	page := 1
	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 1 {
		page = p
	}
	perPage := 24
	if pp, err := strconv.Atoi(c.DefaultQuery("perPage", "24")); err == nil {
		perPage = pp
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > 60 {
		perPage = 60
	}

	feed, err := h.service.GetFeed(ctx, service.FeedOptions{
		Source:     c.DefaultQuery("source", "jpg"),
		Suffix:     strings.TrimSpace(c.Query("suffix")),
		Program:    strings.TrimSpace(c.Query("program")),
		Instrument: strings.TrimSpace(c.Query("instrument")),
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to get JWST feed",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, feed)
}
