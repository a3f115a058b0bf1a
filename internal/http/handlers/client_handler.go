// README: Client (patient) handlers: quick search, table listing and CRUD.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"physio/internal/modules/client"
	"physio/internal/types"
)

type ClientHandler struct {
	clients *client.Service
}

func NewClientHandler(svc *client.Service) *ClientHandler {
	return &ClientHandler{clients: svc}
}

// List handles GET /api/clients. With ?q= it runs the booking-drawer
// quick search; otherwise it serves the paginated table.
func (h *ClientHandler) List(c *gin.Context) {
	if term := strings.TrimSpace(c.Query("q")); term != "" {
		matches, err := h.clients.Search(c.Request.Context(), term)
		if err != nil {
			writeClientError(c, err)
			return
		}
		writeJSON(c, http.StatusOK, gin.H{"data": matches})
		return
	}

	page, err := h.clients.List(c.Request.Context(), intQuery(c, "page", 0), intQuery(c, "limit", 0))
	if err != nil {
		writeClientError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, page)
}

type createClientReq struct {
	Fullname          string `json:"fullname"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	InsuranceProvider string `json:"insurance_provider"`
	PolicyNumber      string `json:"policy_number"`
	MemberID          string `json:"member_id"`
	IsActive          *bool  `json:"is_active"`
}

// Create handles POST /api/clients.
func (h *ClientHandler) Create(c *gin.Context) {
	var req createClientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	created, err := h.clients.Create(c.Request.Context(), client.CreateCommand{
		Fullname:          req.Fullname,
		Email:             req.Email,
		Phone:             req.Phone,
		InsuranceProvider: req.InsuranceProvider,
		PolicyNumber:      req.PolicyNumber,
		MemberID:          req.MemberID,
		IsActive:          active,
	})
	if err != nil {
		writeClientError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, created)
}

type updateClientReq struct {
	Fullname          *string `json:"fullname"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	InsuranceProvider *string `json:"insurance_provider"`
	PolicyNumber      *string `json:"policy_number"`
	MemberID          *string `json:"member_id"`
	IsActive          *bool   `json:"is_active"`
}

// Update handles PATCH /api/clients/:id with partial edits.
func (h *ClientHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing client id")
		return
	}
	var req updateClientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	updated, err := h.clients.Update(c.Request.Context(), client.UpdateCommand{
		ID:                types.ID(id),
		Fullname:          req.Fullname,
		Email:             req.Email,
		Phone:             req.Phone,
		InsuranceProvider: req.InsuranceProvider,
		PolicyNumber:      req.PolicyNumber,
		MemberID:          req.MemberID,
		IsActive:          req.IsActive,
	})
	if err != nil {
		writeClientError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, updated)
}

// Delete handles DELETE /api/clients/:id.
func (h *ClientHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing client id")
		return
	}
	if err := h.clients.Delete(c.Request.Context(), types.ID(id)); err != nil {
		writeClientError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true})
}
