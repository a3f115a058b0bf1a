// README: Appointment handlers for the dashboard listing, booking and stats.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"physio/internal/modules/appointment"
	"physio/internal/types"
)

type AppointmentHandler struct {
	appointments *appointment.Service
}

func NewAppointmentHandler(svc *appointment.Service) *AppointmentHandler {
	return &AppointmentHandler{appointments: svc}
}

// List handles GET /api/appointments with page/limit and optional
// start_date, end_date, status_id, provider_id filters.
func (h *AppointmentHandler) List(c *gin.Context) {
	q := appointment.ListQuery{
		Page:  intQuery(c, "page", 0),
		Limit: intQuery(c, "limit", 0),
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid start_date")
			return
		}
		q.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid end_date")
			return
		}
		q.EndDate = &t
	}
	if v := c.Query("status_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid status_id")
			return
		}
		q.StatusID = &id
	}
	if v := c.Query("provider_id"); v != "" {
		id := types.ID(v)
		q.ProviderID = &id
	}

	page, err := h.appointments.List(c.Request.Context(), q)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, page)
}

type createAppointmentReq struct {
	ClientID   string  `json:"client_id"`
	ProviderID string  `json:"provider_id"`
	ServiceID  string  `json:"service_definition_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Service    string  `json:"service_name"`
	Duration   int     `json:"final_duration"`
	Price      float64 `json:"final_price"`
	Status     int     `json:"status"`
}

// Create handles POST /api/appointments.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	record, err := h.appointments.Create(c.Request.Context(), appointment.CreateCommand{
		ClientID:    types.ID(req.ClientID),
		ProviderID:  types.ID(req.ProviderID),
		ServiceID:   types.ID(req.ServiceID),
		Name:        req.Name,
		Email:       req.Email,
		Date:        req.Date,
		Time:        req.Time,
		ServiceName: req.Service,
		Duration:    req.Duration,
		Price:       req.Price,
		Status:      req.Status,
	})
	if err != nil {
		writeAppointmentError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, record)
}

// Stats handles GET /api/appointments/stats: per-day provider counts,
// revenue and minutes for the dashboard chart.
func (h *AppointmentHandler) Stats(c *gin.Context) {
	stats, err := h.appointments.Stats(c.Request.Context())
	if err != nil {
		writeAppointmentError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, stats)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
