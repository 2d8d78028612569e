package handlers

import (
	"net/http"
	"strconv"
	"time"

	"agendly/services/scheduling"
	"agendly/utils"

	"github.com/gin-gonic/gin"
)

// SchedulingHandler exposes the scheduling engine over HTTP.
type SchedulingHandler struct {
	Engine scheduling.Engine
}

// NewSchedulingHandler creates a SchedulingHandler backed by the given engine.
func NewSchedulingHandler(engine scheduling.Engine) *SchedulingHandler {
	return &SchedulingHandler{Engine: engine}
}

// GetSlotsHandler handles GET /api/slots.
// Query parameters: date (required), serviceId or durationMin (exactly one),
// professionalId (optional), stepMin (optional).
func (h *SchedulingHandler) GetSlotsHandler(c *gin.Context) {
	owner := c.GetString("ownerID")

	req := scheduling.SlotsRequest{
		Date:           c.Query("date"),
		ServiceID:      c.Query("serviceId"),
		ProfessionalID: c.Query("professionalId"),
	}
	if v := c.Query("durationMin"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid durationMin", "durationMin must be an integer")
			return
		}
		req.DurationMin = n
	}
	if v := c.Query("stepMin"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid stepMin", "stepMin must be an integer")
			return
		}
		req.StepMin = n
	}

	results, err := h.Engine.GenerateSlots(c.Request.Context(), owner, req)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":          req.Date,
		"professionals": results,
	})
}

// createAppointmentPayload is the JSON body of POST /api/appointments.
type createAppointmentPayload struct {
	ClientID       string    `json:"clientId" binding:"required"`
	ClientName     string    `json:"clientName"`
	ProfessionalID string    `json:"professionalId" binding:"required"`
	ServiceID      string    `json:"serviceId"`
	DurationMin    int       `json:"durationMin"`
	Start          time.Time `json:"start" binding:"required"`
	CreatedBy      string    `json:"createdBy"`
	IdempotencyKey string    `json:"idempotencyKey"`
}

// CreateAppointmentHandler handles POST /api/appointments.
func (h *SchedulingHandler) CreateAppointmentHandler(c *gin.Context) {
	owner := c.GetString("ownerID")

	var payload createAppointmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	appt, err := h.Engine.CreateAppointment(c.Request.Context(), owner, scheduling.CreateAppointmentRequest{
		ClientID:       payload.ClientID,
		ClientName:     payload.ClientName,
		ProfessionalID: payload.ProfessionalID,
		ServiceID:      payload.ServiceID,
		DurationMin:    payload.DurationMin,
		Start:          payload.Start,
		CreatedBy:      payload.CreatedBy,
		IdempotencyKey: payload.IdempotencyKey,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// cancelAppointmentPayload is the optional JSON body of a cancel request.
type cancelAppointmentPayload struct {
	Reason string `json:"reason"`
}

// CancelAppointmentHandler handles POST /api/appointments/:id/cancel.
func (h *SchedulingHandler) CancelAppointmentHandler(c *gin.Context) {
	owner := c.GetString("ownerID")
	id := c.Param("id")

	var payload cancelAppointmentPayload
	// The body is optional; a missing or empty body cancels without a reason.
	_ = c.ShouldBindJSON(&payload)

	appt, err := h.Engine.CancelAppointment(c.Request.Context(), owner, id, payload.Reason)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// GetAppointmentHandler handles GET /api/appointments/:id.
func (h *SchedulingHandler) GetAppointmentHandler(c *gin.Context) {
	owner := c.GetString("ownerID")
	id := c.Param("id")

	appt, err := h.Engine.GetAppointment(c.Request.Context(), owner, id)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// respondSchedulingError maps engine error codes onto HTTP statuses.
func respondSchedulingError(c *gin.Context, err error) {
	code := scheduling.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case scheduling.CodeInvalidInput:
		status = http.StatusBadRequest
	case scheduling.CodeNotFound:
		status = http.StatusNotFound
	case scheduling.CodeScheduleConflict:
		status = http.StatusConflict
	case scheduling.CodeStoreUnavailable:
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, utils.ErrorResponse{Message: err.Error(), Code: code})
}
