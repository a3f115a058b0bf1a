// README: Assist service: classify free text into an Intent, execute validated intents.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"physio/internal/modules/appointment"
)

// LLM is the completion service used for classification. The reply is
// untrusted text and must pass the intent schema before execution.
type LLM interface {
	CompleteIntent(ctx context.Context, userQuery string) (string, error)
}

// Appointments is the read-only slice of the appointment store the
// executor needs.
type Appointments interface {
	Filter(ctx context.Context, q appointment.FilterQuery) ([]appointment.Record, error)
	Revenue(ctx context.Context, q appointment.RevenueQuery) (float64, error)
}

type Service struct {
	llm          LLM
	appointments Appointments
}

func NewService(llm LLM, appointments Appointments) *Service {
	return &Service{llm: llm, appointments: appointments}
}

// Classify turns free text into a schema-valid Intent. Every failure
// mode (upstream error, non-JSON reply, schema violation) fails closed:
// no partially-valid intent ever leaves this method.
func (s *Service) Classify(ctx context.Context, query string) (*Intent, error) {
	reply, err := s.llm.CompleteIntent(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	raw := []byte(reply)
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: %q", ErrMalformedReply, truncate(reply, 120))
	}

	return ValidateIntent(raw)
}

// ResultKind tags the executor's payload variant.
type ResultKind int

const (
	ResultBookings ResultKind = iota
	ResultRevenue
	ResultNotImplemented
)

// Result is the tagged outcome of executing an intent.
type Result struct {
	Kind     ResultKind
	Bookings []appointment.Record
	Revenue  float64
}

// Execute dispatches a validated intent against the appointment store.
// Store failures propagate with their native message. Actions without an
// executor branch return a ResultNotImplemented payload, not an error.
func (s *Service) Execute(ctx context.Context, intent Intent) (*Result, error) {
	switch intent.Action {
	case ActionFilterBookings:
		q := appointment.FilterQuery{Service: intent.Service}
		applyRange(&q.From, &q.To, intent.DateRange)

		records, err := s.appointments.Filter(ctx, q)
		if err != nil {
			return nil, err
		}
		if records == nil {
			records = []appointment.Record{}
		}
		return &Result{Kind: ResultBookings, Bookings: records}, nil

	case ActionGetRevenue:
		// Revenue is clinic-wide: the service field is not applied here.
		var q appointment.RevenueQuery
		applyRange(&q.From, &q.To, intent.DateRange)

		total, err := s.appointments.Revenue(ctx, q)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: ResultRevenue, Revenue: total}, nil

	case ActionFindAllClients, ActionFindActiveClients, ActionFindInactiveClients,
		ActionFindAllProviders, ActionFindActiveProviders, ActionFindInactiveProviders,
		ActionFindAllServices, ActionFindActiveServices, ActionFindInactiveServices:
		return &Result{Kind: ResultNotImplemented}, nil

	default:
		// Schema-unknown actions cannot reach here via Classify, but the
		// execute endpoint accepts client-supplied intents too.
		return &Result{Kind: ResultNotImplemented}, nil
	}
}

func applyRange(from, to **time.Time, token *string) {
	if token == nil {
		return
	}
	r := ResolveDateRange(*token)
	if r == nil {
		return
	}
	*from = &r.Start
	*to = &r.End
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
