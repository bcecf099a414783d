package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"andromeda/internal/astro"
	"andromeda/internal/clients"
	"andromeda/internal/models"
	"andromeda/internal/service"

	"github.com/gin-gonic/gin"
)

type AstroHandler struct {
	service service.AstroService
}

func NewAstroHandler(service service.AstroService) *AstroHandler {
	return &AstroHandler{service: service}
}

func (h *AstroHandler) GetEvents(c *gin.Context) {
	ctx := c.Request.Context()

	lat, _ := strconv.ParseFloat(c.DefaultQuery("lat", "55.7558"), 64)
	lon, _ := strconv.ParseFloat(c.DefaultQuery("lon", "37.6176"), 64)
	lat = clampFloat(lat, -90, 90)
	lon = clampFloat(lon, -180, 180)

	// Годовой диапазон по умолчанию, чтобы события точно нашлись
	now := time.Now().UTC()
	from := c.DefaultQuery("from_date", now.Format("2006-01-02"))
	to := c.DefaultQuery("to_date", now.AddDate(1, 0, 0).Format("2006-01-02"))
	search := c.Query("search")

	resp, err := h.service.GetEvents(ctx, lat, lon, from, to)
	if err != nil {
		// Эндпоинт не отдает 500: при любой внутренней ошибке — mock-данные
		resp = astro.GenerateMockNow(from, to)
	}

	if search != "" {
		resp.Data = filterEvents(resp.Data, search)
	}

	c.JSON(http.StatusOK, resp)
}

// filterEvents оставляет события, у которых тип или описание содержит
// подстроку. Списки moon и sun поиском не фильтруются.
func filterEvents(events []models.AstronomyEvent, search string) []models.AstronomyEvent {
	needle := strings.ToLower(search)
	filtered := make([]models.AstronomyEvent, 0, len(events))
	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Type), needle) ||
			strings.Contains(strings.ToLower(ev.Description), needle) {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

func (h *AstroHandler) GetPositions(c *gin.Context) {
	h.positions(c, "")
}

func (h *AstroHandler) GetBodyPositions(c *gin.Context) {
	h.positions(c, c.Param("body"))
}

func (h *AstroHandler) positions(c *gin.Context, body string) {
	ctx := c.Request.Context()

	// У positions-эндпоинтов параметры называются полными именами,
	// в отличие от events (lat/lon).
	lat, _ := strconv.ParseFloat(c.DefaultQuery("latitude", "55.7558"), 64)
	lon, _ := strconv.ParseFloat(c.DefaultQuery("longitude", "37.6176"), 64)
	elevation, _ := strconv.ParseFloat(c.DefaultQuery("elevation", "0"), 64)
	lat = clampFloat(lat, -90, 90)
	lon = clampFloat(lon, -180, 180)

	now := time.Now().UTC()
	q := clients.PositionsQuery{
		Lat:       lat,
		Lon:       lon,
		Elevation: elevation,
		FromDate:  c.DefaultQuery("from_date", now.Format("2006-01-02")),
		ToDate:    c.DefaultQuery("to_date", now.Format("2006-01-02")),
		Time:      c.DefaultQuery("time", now.Format("15:04:05")),
	}

	var (
		data map[string]interface{}
		err  error
	)
	if body == "" {
		data, err = h.service.Positions(ctx, q)
	} else {
		data, err = h.service.BodyPositions(ctx, body, q)
	}

	if err != nil {
		resp := gin.H{
			"ok":    false,
			"error": err.Error(),
		}
		if errors.Is(err, service.ErrCredentialsMissing) {
			resp["error"] = "Astronomy API credentials not configured"
		} else if code := clients.FetchStatus(err); code > 0 {
			resp["code"] = code
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"data": data,
	})
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
