// README: Service catalog: definitions, rate tiers, specialties, statuses.
package catalog

import (
	"errors"
	"time"

	"physio/internal/types"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("specialty name or slug already exists")
)

type RateTier struct {
	ID                  types.ID `json:"id,omitempty"`
	ServiceDefinitionID types.ID `json:"service_definition_id,omitempty"`
	DurationMinutes     int      `json:"duration_minutes"`
	Price               float64  `json:"price"`
}

type ServiceDefinition struct {
	ID           types.ID   `json:"id"`
	SpecialtyID  *types.ID  `json:"specialty_id,omitempty"`
	Name         string     `json:"name"`
	BaseDuration int        `json:"base_duration"`
	BasePrice    float64    `json:"base_price"`
	RatesChart   []RateTier `json:"rates_chart"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Specialty struct {
	ID          types.ID            `json:"id"`
	Name        string              `json:"name"`
	Slug        string              `json:"slug,omitempty"`
	Description *string             `json:"description,omitempty"`
	IsActive    bool                `json:"is_active"`
	Services    []ServiceDefinition `json:"service_definitions"`
}

type Status struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CreateServiceCommand struct {
	SpecialtyID  types.ID
	Name         string
	BaseDuration int
	BasePrice    float64
	Rates        []RateTier
}

type UpdateServiceCommand struct {
	ID           types.ID
	Name         string
	BaseDuration int
	BasePrice    float64
}

type CreateSpecialtyCommand struct {
	Name        string
	Description *string
}

// UpdateSpecialtyCommand renames and/or toggles a specialty; nil fields
// are left untouched. A rename also regenerates the slug.
type UpdateSpecialtyCommand struct {
	ID       types.ID
	Name     *string
	IsActive *bool
}
