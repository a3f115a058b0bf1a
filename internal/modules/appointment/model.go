// README: Appointment record and query shapes.
package appointment

import (
	"errors"
	"time"

	"physio/internal/types"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("appointment not found")
)

// StatusRef is the joined status row shown alongside a record.
type StatusRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProviderRef is the joined provider display info.
type ProviderRef struct {
	ID       types.ID `json:"id"`
	Fullname string   `json:"fullname"`
}

// ServiceRef is the joined service definition with its specialty name.
type ServiceRef struct {
	Name      string  `json:"name"`
	Specialty *string `json:"specialty,omitempty"`
}

// Record is a scheduled booking. Dates and times are kept as the
// calendar strings the store serves ("2006-01-02", "15:04").
type Record struct {
	ID                  types.ID     `json:"id"`
	ClientID            *types.ID    `json:"client_id,omitempty"`
	ProviderID          *types.ID    `json:"provider_id,omitempty"`
	ServiceDefinitionID *types.ID    `json:"service_definition_id,omitempty"`
	Name                string       `json:"name"`
	Email               string       `json:"email"`
	Date                string       `json:"date"`
	Time                string       `json:"time"`
	ServiceName         *string      `json:"service_name,omitempty"`
	FinalDuration       *int         `json:"final_duration,omitempty"`
	FinalPrice          *float64     `json:"final_price,omitempty"`
	Status              *StatusRef   `json:"status,omitempty"`
	ServiceDefinition   *ServiceRef  `json:"service_definitions,omitempty"`
	Provider            *ProviderRef `json:"providers,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
}

// FilterQuery narrows records by exact service name and/or an inclusive
// date window. Nil fields apply no constraint.
type FilterQuery struct {
	Service *string
	From    *time.Time
	To      *time.Time
}

// RevenueQuery sums final_price over the inclusive date window.
// Nil bounds sum over every record.
type RevenueQuery struct {
	From *time.Time
	To   *time.Time
}

// ListQuery drives the paginated dashboard listing.
type ListQuery struct {
	Page       int
	Limit      int
	StartDate  *time.Time
	EndDate    *time.Time
	StatusID   *int
	ProviderID *types.ID
}

// Page is one page of records plus pagination bookkeeping.
type Page struct {
	Records    []Record `json:"data"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	TotalPages int      `json:"totalPages"`
}

// CreateCommand carries the booking form payload. ServiceName is the
// denormalized display copy the assist filter matches against.
type CreateCommand struct {
	ClientID    types.ID
	ProviderID  types.ID
	ServiceID   types.ID
	Name        string
	Email       string
	Date        string
	Time        string
	ServiceName string
	Duration    int
	Price       float64
	Status      int
}

// StatRow is the raw material for dashboard stats: one appointment with
// its provider.
type StatRow struct {
	Date          string
	ProviderID    types.ID
	ProviderName  string
	FinalPrice    float64
	FinalDuration int
}

// ProviderDayStat aggregates a provider's bookings on one day.
type ProviderDayStat struct {
	ID       types.ID `json:"id"`
	Name     string   `json:"name"`
	Count    int      `json:"count"`
	Price    float64  `json:"price"`
	Duration int      `json:"duration"`
}
