// README: Provider handlers with specialty link management.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"physio/internal/modules/provider"
	"physio/internal/types"
)

type ProviderHandler struct {
	providers *provider.Service
}

func NewProviderHandler(svc *provider.Service) *ProviderHandler {
	return &ProviderHandler{providers: svc}
}

// List handles GET /api/providers including each provider's specialties.
func (h *ProviderHandler) List(c *gin.Context) {
	providers, err := h.providers.List(c.Request.Context())
	if err != nil {
		writeProviderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"data": providers})
}

type createProviderReq struct {
	Fullname      string   `json:"fullname"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	LicenseNumber string   `json:"license_number"`
	SpecialtyIDs  []string `json:"specialty_ids"`
}

// Create handles POST /api/providers.
func (h *ProviderHandler) Create(c *gin.Context) {
	var req createProviderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	created, err := h.providers.Create(c.Request.Context(), provider.CreateCommand{
		Fullname:      req.Fullname,
		Email:         req.Email,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		SpecialtyIDs:  toIDs(req.SpecialtyIDs),
	})
	if err != nil {
		if created != nil {
			// Provider row landed but specialty links did not.
			writeJSON(c, http.StatusCreated, gin.H{"data": created, "warning": "specialty links failed"})
			return
		}
		writeProviderError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, created)
}

type updateProviderReq struct {
	Fullname      string   `json:"fullname"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	LicenseNumber string   `json:"license_number"`
	IsActive      bool     `json:"is_active"`
	SpecialtyIDs  []string `json:"specialty_ids"`
}

// Update handles PATCH /api/providers/:id, rewriting specialty links.
func (h *ProviderHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing provider id")
		return
	}
	var req updateProviderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.providers.Update(c.Request.Context(), provider.UpdateCommand{
		ID:            types.ID(id),
		Fullname:      req.Fullname,
		Email:         req.Email,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		IsActive:      req.IsActive,
		SpecialtyIDs:  toIDs(req.SpecialtyIDs),
	})
	if err != nil {
		writeProviderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true})
}

func toIDs(in []string) []types.ID {
	out := make([]types.ID, 0, len(in))
	for _, v := range in {
		out = append(out, types.ID(v))
	}
	return out
}
