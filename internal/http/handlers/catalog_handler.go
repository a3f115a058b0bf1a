// README: Catalog handlers: service definitions, rate tiers, specialties, statuses.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"physio/internal/modules/catalog"
	"physio/internal/types"
)

type CatalogHandler struct {
	catalog *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

// ListServices handles GET /api/services with nested rate charts.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	defs, err := h.catalog.ListServices(c.Request.Context())
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"data": defs})
}

type rateReq struct {
	ServiceDefinitionID string  `json:"service_definition_id"`
	DurationMinutes     int     `json:"duration_minutes"`
	Price               float64 `json:"price"`
}

type createServiceReq struct {
	SpecialtyID  string    `json:"specialty_id"`
	Name         string    `json:"name"`
	BaseDuration int       `json:"base_duration"`
	BasePrice    float64   `json:"base_price"`
	Rates        []rateReq `json:"rates_chart"`
}

// CreateService handles POST /api/services.
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req createServiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	rates := make([]catalog.RateTier, 0, len(req.Rates))
	for _, r := range req.Rates {
		rates = append(rates, catalog.RateTier{
			DurationMinutes: r.DurationMinutes,
			Price:           r.Price,
		})
	}
	def, err := h.catalog.CreateService(c.Request.Context(), catalog.CreateServiceCommand{
		SpecialtyID:  types.ID(req.SpecialtyID),
		Name:         req.Name,
		BaseDuration: req.BaseDuration,
		BasePrice:    req.BasePrice,
		Rates:        rates,
	})
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, def)
}

type updateServiceReq struct {
	Name         string  `json:"name"`
	BaseDuration int     `json:"base_duration"`
	BasePrice    float64 `json:"base_price"`
}

// UpdateService handles PUT /api/services/:id.
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing service id")
		return
	}
	var req updateServiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	def, err := h.catalog.UpdateService(c.Request.Context(), catalog.UpdateServiceCommand{
		ID:           types.ID(id),
		Name:         req.Name,
		BaseDuration: req.BaseDuration,
		BasePrice:    req.BasePrice,
	})
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, def)
}

// DeleteService handles DELETE /api/services/:id.
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing service id")
		return
	}
	if err := h.catalog.DeleteService(c.Request.Context(), types.ID(id)); err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true})
}

// AddRate handles POST /api/rates.
func (h *CatalogHandler) AddRate(c *gin.Context) {
	var req rateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	tier, err := h.catalog.AddRate(c.Request.Context(), catalog.RateTier{
		ServiceDefinitionID: types.ID(req.ServiceDefinitionID),
		DurationMinutes:     req.DurationMinutes,
		Price:               req.Price,
	})
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, tier)
}

// DeleteRate handles DELETE /api/rates/:id.
func (h *CatalogHandler) DeleteRate(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing rate id")
		return
	}
	if err := h.catalog.DeleteRate(c.Request.Context(), types.ID(id)); err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true})
}

// ListSpecialties handles GET /api/specialties with nested services.
func (h *CatalogHandler) ListSpecialties(c *gin.Context) {
	specialties, err := h.catalog.ListSpecialties(c.Request.Context())
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"data": specialties})
}

type createSpecialtyReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CreateSpecialty handles POST /api/specialties. The slug is derived
// from the name server-side.
func (h *CatalogHandler) CreateSpecialty(c *gin.Context) {
	var req createSpecialtyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	sp, err := h.catalog.CreateSpecialty(c.Request.Context(), catalog.CreateSpecialtyCommand{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, sp)
}

type updateSpecialtyReq struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

// UpdateSpecialty handles PATCH /api/specialties/:id.
func (h *CatalogHandler) UpdateSpecialty(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing specialty id")
		return
	}
	var req updateSpecialtyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	sp, err := h.catalog.UpdateSpecialty(c.Request.Context(), catalog.UpdateSpecialtyCommand{
		ID:       types.ID(id),
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sp)
}

// DeactivateSpecialty handles DELETE /api/specialties/:id (soft delete).
func (h *CatalogHandler) DeactivateSpecialty(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing specialty id")
		return
	}
	if err := h.catalog.DeactivateSpecialty(c.Request.Context(), types.ID(id)); err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true})
}

// ListStatuses handles GET /api/statuses.
func (h *CatalogHandler) ListStatuses(c *gin.Context) {
	statuses, err := h.catalog.ListStatuses(c.Request.Context())
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"data": statuses})
}
