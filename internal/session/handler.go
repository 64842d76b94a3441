package session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"disciplix/internal/api"
	"disciplix/internal/auth"
	"disciplix/internal/logger"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Book godoc
// @Summary Book a training session
// @Description Books a session with a trainer, rejecting conflicting slots
// @Tags sessions
// @Accept json
// @Produce json
// @Param trainerId path int true "Trainer ID"
// @Param request body BookRequest true "Booking details"
// @Success 201 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Security BearerAuth
// @Router /api/training/trainers/{trainerId}/book [post]
func (h *Handler) Book(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	trainerID, err := strconv.Atoi(c.Param("trainerId"))
	if err != nil || trainerID < 1 {
		api.Fail(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.FailValidation(c, err)
		return
	}

	session, err := h.service.Book(c.Request.Context(), userID, trainerID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTrainerNotFound):
			api.Fail(c, http.StatusNotFound, "Trainer not found")
		case errors.Is(err, ErrTrainerUnavailable):
			api.Fail(c, http.StatusBadRequest, "Trainer is not currently available")
		case errors.Is(err, ErrSlotTaken):
			api.Fail(c, http.StatusBadRequest, "This time slot is not available")
		default:
			logger.Error("booking session failed", "user_id", userID, "trainer_id", trainerID, "error", err)
			api.Error(c, "Failed to book session")
		}
		return
	}

	api.Success(c, http.StatusCreated, gin.H{"session": session})
}

// List godoc
// @Summary List my sessions
// @Description Returns the authenticated user's sessions, newest first
// @Tags sessions
// @Produce json
// @Param status query string false "Filter by status"
// @Param upcoming query bool false "Only scheduled sessions starting from now"
// @Success 200 {object} api.Envelope
// @Security BearerAuth
// @Router /api/training/sessions [get]
func (h *Handler) List(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter := ListFilter{
		UserID:   userID,
		Status:   c.Query("status"),
		Upcoming: c.Query("upcoming") == "true",
	}
	if filter.Status != "" && !validStatus(filter.Status) {
		api.Fail(c, http.StatusBadRequest, "Invalid status filter")
		return
	}

	sessions, err := h.service.ListByUser(c.Request.Context(), filter)
	if err != nil {
		logger.Error("listing sessions failed", "user_id", userID, "error", err)
		api.Error(c, "Failed to fetch sessions")
		return
	}

	api.Success(c, http.StatusOK, gin.H{"sessions": sessions})
}

// Cancel godoc
// @Summary Cancel a session
// @Description Cancels an owned SCHEDULED session at least 24 hours before it starts
// @Tags sessions
// @Produce json
// @Param sessionId path int true "Session ID"
// @Success 200 {object} api.Envelope
// @Failure 400 {object} api.Envelope
// @Failure 403 {object} api.Envelope
// @Failure 404 {object} api.Envelope
// @Security BearerAuth
// @Router /api/training/sessions/{sessionId}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	sessionID, err := strconv.Atoi(c.Param("sessionId"))
	if err != nil || sessionID < 1 {
		api.Fail(c, http.StatusBadRequest, "Invalid session ID")
		return
	}

	session, err := h.service.Cancel(c.Request.Context(), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			api.Fail(c, http.StatusNotFound, "Session not found")
		case errors.Is(err, ErrNotOwner):
			api.Fail(c, http.StatusForbidden, "You can only cancel your own sessions")
		case errors.Is(err, ErrNotScheduled), errors.Is(err, ErrNotCancellable):
			api.Fail(c, http.StatusBadRequest, "Only scheduled sessions can be cancelled")
		case errors.Is(err, ErrTooLateToCancel):
			api.Fail(c, http.StatusBadRequest, "Sessions must be cancelled at least 24 hours in advance")
		default:
			logger.Error("cancelling session failed", "user_id", userID, "session_id", sessionID, "error", err)
			api.Error(c, "Failed to cancel session")
		}
		return
	}

	api.SuccessMessage(c, http.StatusOK, "Session cancelled successfully", gin.H{"session": session})
}

func validStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled, StatusRescheduled:
		return true
	}
	return false
}
