package handlers

import (
	"net/http"
	"time"

	"andromeda/internal/query"
	"andromeda/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	readingsService service.ReadingsService
	catalogService  service.CatalogService
	spaceService    service.SpaceService
	astroService    service.AstroService
	jwstService     service.JWSTService
}

func NewDashboardHandler(
	readingsService service.ReadingsService,
	catalogService service.CatalogService,
	spaceService service.SpaceService,
	astroService service.AstroService,
	jwstService service.JWSTService,
) *DashboardHandler {
	return &DashboardHandler{
		readingsService: readingsService,
		catalogService:  catalogService,
		spaceService:    spaceService,
		astroService:    astroService,
		jwstService:     jwstService,
	}
}

// GetDashboardData возвращает все данные главного дашборда одним запросом.
// Отказ любого источника не ломает ответ, он попадает в errors.
func (h *DashboardHandler) GetDashboardData(c *gin.Context) {
	ctx := c.Request.Context()

	type dashboardData struct {
		ISS     interface{} `json:"iss,omitempty"`
		Trend   interface{} `json:"trend,omitempty"`
		Catalog interface{} `json:"catalog,omitempty"`
		Space   interface{} `json:"space,omitempty"`
		Astro   interface{} `json:"astro,omitempty"`
		JWST    interface{} `json:"jwst,omitempty"`
		Summary interface{} `json:"summary,omitempty"`
		Errors  []string    `json:"errors,omitempty"`
	}

	data := dashboardData{}
	var errs []string

	// 1. Последнее показание МКС
	reading, err := h.readingsService.GetLastReading(ctx)
	if err != nil {
		errs = append(errs, "ISS data: "+err.Error())
	} else {
		data.ISS = reading
	}

	// 2. Тренд МКС
	trend, err := h.readingsService.GetTrend(ctx)
	if err != nil {
		errs = append(errs, "ISS trend: "+err.Error())
	} else {
		data.Trend = trend
	}

	// 3. Свежие записи каталога
	items, err := h.catalogService.List(ctx, service.ListOptions{
		Limit: 10,
		Sort:  query.SortInsertedDesc,
	})
	if err != nil {
		errs = append(errs, "OSDR catalog: "+err.Error())
	} else {
		data.Catalog = items
	}

	// 4. Сводка космических источников
	summary, err := h.spaceService.Summary(ctx)
	if err != nil {
		errs = append(errs, "Space summary: "+err.Error())
	} else {
		data.Space = summary
	}

	// 5. Астрономические события на неделю
	now := time.Now().UTC()
	astroResp, err := h.astroService.GetEvents(ctx, 55.7558, 37.6176,
		now.Format("2006-01-02"), now.AddDate(0, 0, 7).Format("2006-01-02"))
	if err != nil {
		errs = append(errs, "Astronomy: "+err.Error())
	} else {
		data.Astro = astroResp
	}

	// 6. Лента JWST (первые 12)
	feed, err := h.jwstService.GetFeed(ctx, service.FeedOptions{
		Source:  "jpg",
		Page:    1,
		PerPage: 12,
	})
	if err != nil {
		errs = append(errs, "JWST: "+err.Error())
	} else {
		data.JWST = feed
	}

	data.Summary = gin.H{
		"timestamp":    now.Format(time.RFC3339),
		"services_ok":  len(errs) == 0,
		"errors_count": len(errs),
		"data_sources": []string{"ISS", "OSDR", "Space", "AstronomyAPI", "JWST"},
	}
	if len(errs) > 0 {
		data.Errors = errs
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
