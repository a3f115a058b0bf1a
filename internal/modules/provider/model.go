// README: Provider records with specialty links.
package provider

import (
	"errors"
	"time"

	"physio/internal/types"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("provider not found")
)

type SpecialtyRef struct {
	ID   types.ID `json:"id"`
	Name string   `json:"name"`
}

type Provider struct {
	ID            types.ID       `json:"id"`
	Fullname      string         `json:"fullname"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	LicenseNumber string         `json:"license_number"`
	IsActive      bool           `json:"is_active"`
	Specialties   []SpecialtyRef `json:"specialties"`
	CreatedAt     time.Time      `json:"created_at"`
}

type CreateCommand struct {
	Fullname      string
	Email         string
	Phone         string
	LicenseNumber string
	SpecialtyIDs  []types.ID
}

type UpdateCommand struct {
	ID            types.ID
	Fullname      string
	Email         string
	Phone         string
	LicenseNumber string
	IsActive      bool
	SpecialtyIDs  []types.ID
}
