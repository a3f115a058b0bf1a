// README: Assist intent model: the closed action set and the validated Intent shape.
package assist

import (
	"errors"
	"time"
)

// Action is one of the closed set of structured commands the classifier
// may produce. Anything outside this set never reaches execution.
type Action string

const (
	ActionFilterBookings        Action = "filter_bookings"
	ActionGetRevenue            Action = "get_revenue"
	ActionFindAllClients        Action = "find_all_clients"
	ActionFindActiveClients     Action = "find_active_clients"
	ActionFindInactiveClients   Action = "find_inactive_clients"
	ActionFindAllProviders      Action = "find_all_providers"
	ActionFindActiveProviders   Action = "find_active_providers"
	ActionFindInactiveProviders Action = "find_inactive_providers"
	ActionFindAllServices       Action = "find_all_services"
	ActionFindActiveServices    Action = "find_active_services"
	ActionFindInactiveServices  Action = "find_inactive_services"
)

// Actions lists every permitted action, in schema order.
var Actions = []Action{
	ActionFilterBookings,
	ActionGetRevenue,
	ActionFindAllClients,
	ActionFindActiveClients,
	ActionFindInactiveClients,
	ActionFindAllProviders,
	ActionFindActiveProviders,
	ActionFindInactiveProviders,
	ActionFindAllServices,
	ActionFindActiveServices,
	ActionFindInactiveServices,
}

// Intent is the structured command derived from free text. Only these
// four fields may ever be present; the schema rejects everything else.
type Intent struct {
	Action    Action  `json:"action"`
	Service   *string `json:"service,omitempty"`
	DateRange *string `json:"date_range,omitempty"`
	// InactiveDays is declared for the find_inactive_* actions but no
	// executor path consumes it yet.
	InactiveDays *int `json:"inactive_days,omitempty"`
}

// DateRange is a resolved pair of calendar bounds, both inclusive.
// Computed fresh on every resolution; never persisted.
type DateRange struct {
	Start time.Time
	End   time.Time
}

var (
	// ErrUpstream: the language-model call failed or returned no usable candidate.
	ErrUpstream = errors.New("ai service unavailable")
	// ErrMalformedReply: the model's reply text is not parseable JSON.
	ErrMalformedReply = errors.New("ai reply is not valid json")
	// ErrSchemaViolation: the parsed reply does not match the intent schema.
	ErrSchemaViolation = errors.New("intent schema violation")
)
