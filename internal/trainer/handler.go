package trainer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"disciplix/internal/api"
	"disciplix/internal/logger"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List trainers
// @Description Returns verified, available trainers with filtering, sorting and pagination
// @Tags trainers
// @Produce json
// @Param specialty query string false "Exact specialty match"
// @Param minRate query number false "Minimum hourly rate"
// @Param maxRate query number false "Maximum hourly rate"
// @Param minRating query number false "Minimum average rating"
// @Param search query string false "Matches trainer name, bio or specialties"
// @Param sortBy query string false "rating | price | experience | sessionCount" default(rating)
// @Param sortOrder query string false "asc | desc" default(desc)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(12)
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Router /api/training/trainers [get]
func (h *Handler) List(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	items, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		logger.Error("listing trainers failed", "error", err)
		api.Error(c, "Failed to fetch trainers")
		return
	}

	api.Success(c, http.StatusOK, gin.H{
		"trainers":   items,
		"pagination": pagination,
	})
}

// Get godoc
// @Summary Get trainer detail
// @Description Returns a trainer profile with recent reviews and upcoming booked slots
// @Tags trainers
// @Produce json
// @Param trainerId path int true "Trainer ID"
// @Success 200 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Router /api/training/trainers/{trainerId} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("trainerId"))
	if err != nil || id < 1 {
		api.Fail(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTrainerNotFound) {
			api.Fail(c, http.StatusNotFound, "Trainer not found")
			return
		}
		logger.Error("fetching trainer failed", "trainer_id", id, "error", err)
		api.Error(c, "Failed to fetch trainer")
		return
	}

	api.Success(c, http.StatusOK, gin.H{"trainer": detail})
}

// ListSpecialties godoc
// @Summary List specialties
// @Description Returns the distinct specialties across active trainers
// @Tags trainers
// @Produce json
// @Success 200 {object} api.Envelope
// @Router /api/training/trainers/specialties [get]
func (h *Handler) ListSpecialties(c *gin.Context) {
	specialties, err := h.service.ListSpecialties(c.Request.Context())
	if err != nil {
		logger.Error("listing specialties failed", "error", err)
		api.Error(c, "Failed to fetch specialties")
		return
	}

	api.Success(c, http.StatusOK, gin.H{"specialties": specialties})
}

func parseListFilter(c *gin.Context) (ListFilter, error) {
	filter := ListFilter{
		Specialty: c.Query("specialty"),
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", "rating"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}

	var err error
	if filter.Page, err = parseIntParam(c, "page", 1); err != nil {
		return filter, errors.New("Invalid page parameter")
	}
	if filter.Limit, err = parseIntParam(c, "limit", defaultLimit); err != nil {
		return filter, errors.New("Invalid limit parameter")
	}
	if filter.MinRate, err = parseFloatParam(c, "minRate"); err != nil {
		return filter, errors.New("Invalid minRate parameter")
	}
	if filter.MaxRate, err = parseFloatParam(c, "maxRate"); err != nil {
		return filter, errors.New("Invalid maxRate parameter")
	}
	if filter.MinRating, err = parseFloatParam(c, "minRating"); err != nil {
		return filter, errors.New("Invalid minRating parameter")
	}
	return filter, nil
}

func parseIntParam(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func parseFloatParam(c *gin.Context, name string) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}
