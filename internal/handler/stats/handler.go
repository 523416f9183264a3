package stats

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/petgroom/admin-api/internal/model"
	"github.com/petgroom/admin-api/internal/service/stats"
	apperrors "github.com/petgroom/admin-api/pkg/errors"
	"github.com/petgroom/admin-api/pkg/httputil"
)

// summaryTTL keeps dashboard polling from recomputing the same day over and
// over; aggregates tolerate being a few seconds stale.
const summaryTTL = 15 * time.Second

type Handler struct {
	service *stats.Service
	cache   *gocache.Cache
}

func NewHandler(service *stats.Service) *Handler {
	return &Handler{
		service: service,
		cache:   gocache.New(summaryTTL, time.Minute),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/stats")
	{
		group.GET("/daily", h.DailySummary)
		group.GET("/upcoming", h.Upcoming)
		group.GET("/clients/:id", h.ClientSummary)
	}
}

func (h *Handler) DailySummary(c *gin.Context) {
	date, ok := h.parseDate(c)
	if !ok {
		return
	}

	key := "daily:" + date.Format(model.DateLayout)
	if cached, found := h.cache.Get(key); found {
		httputil.RespondWithSuccess(c, http.StatusOK, cached)
		return
	}

	summary, err := h.service.DailySummary(c.Request.Context(), date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.cache.SetDefault(key, summary)
	httputil.RespondWithSuccess(c, http.StatusOK, summary)
}

func (h *Handler) Upcoming(c *gin.Context) {
	date, ok := h.parseDate(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httputil.RespondWithError(c, apperrors.NewValidation("limit", "must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	appointments, err := h.service.Upcoming(c.Request.Context(), date, limit)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, appointments)
}

func (h *Handler) ClientSummary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("id", "must be a valid id"))
		return
	}

	summary, err := h.service.ClientSummary(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, summary)
}

func (h *Handler) parseDate(c *gin.Context) (time.Time, bool) {
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(model.DateLayout, raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.NewValidation("date", "must be a date in 2006-01-02 format"))
			return time.Time{}, false
		}
		date = parsed
	}
	return date, true
}
