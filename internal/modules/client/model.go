// README: Client (patient) records and commands.
package client

import (
	"errors"

	"physio/internal/types"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("client not found")
)

type Client struct {
	ID                types.ID `json:"id"`
	Fullname          string   `json:"fullname"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	InsuranceProvider string   `json:"insurance_provider"`
	PolicyNumber      string   `json:"policy_number"`
	MemberID          string   `json:"member_id"`
	IsActive          bool     `json:"is_active"`
}

// Summary is the trimmed shape returned by the booking-drawer quick search.
type Summary struct {
	ID       types.ID `json:"id"`
	Fullname string   `json:"fullname"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
}

// Page is one page of the client table.
type Page struct {
	Clients     []Client `json:"data"`
	TotalPages  int      `json:"totalPages"`
	CurrentPage int      `json:"currentPage"`
}

type CreateCommand struct {
	Fullname          string
	Email             string
	Phone             string
	InsuranceProvider string
	PolicyNumber      string
	MemberID          string
	IsActive          bool
}

// UpdateCommand carries partial edits; nil fields are left untouched.
type UpdateCommand struct {
	ID                types.ID
	Fullname          *string
	Email             *string
	Phone             *string
	InsuranceProvider *string
	PolicyNumber      *string
	MemberID          *string
	IsActive          *bool
}
