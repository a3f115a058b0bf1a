package assist

import (
	"context"
	"errors"
	"testing"
	"time"

	"physio/internal/modules/appointment"
)

type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) CompleteIntent(_ context.Context, _ string) (string, error) {
	return s.reply, s.err
}

type stubAppointments struct {
	records  []appointment.Record
	revenue  float64
	err      error
	gotQuery *appointment.FilterQuery
	gotRev   *appointment.RevenueQuery
}

func (s *stubAppointments) Filter(_ context.Context, q appointment.FilterQuery) ([]appointment.Record, error) {
	s.gotQuery = &q
	return s.records, s.err
}

func (s *stubAppointments) Revenue(_ context.Context, q appointment.RevenueQuery) (float64, error) {
	s.gotRev = &q
	return s.revenue, s.err
}

func TestClassify_FailsClosed(t *testing.T) {
	tests := []struct {
		name    string
		llm     *stubLLM
		wantErr error
	}{
		{"upstream error", &stubLLM{err: errors.New("rate limited")}, ErrUpstream},
		{"plain text reply", &stubLLM{reply: "sure, here are your bookings"}, ErrMalformedReply},
		{"empty reply", &stubLLM{reply: ""}, ErrMalformedReply},
		{"truncated json", &stubLLM{reply: `{"action":"get_rev`}, ErrMalformedReply},
		{"unknown action", &stubLLM{reply: `{"action":"summon_demon"}`}, ErrSchemaViolation},
		{"extra field", &stubLLM{reply: `{"action":"get_revenue","note":"hi"}`}, ErrSchemaViolation},
		{"valid json wrong shape", &stubLLM{reply: `"get_revenue"`}, ErrSchemaViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.llm, &stubAppointments{})
			intent, err := svc.Classify(context.Background(), "how much did we make")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Classify() error = %v, want %v", err, tt.wantErr)
			}
			if intent != nil {
				t.Errorf("Classify() intent = %+v, want nil", intent)
			}
		})
	}
}

func TestClassify_ValidReply(t *testing.T) {
	svc := NewService(&stubLLM{reply: `{"action":"filter_bookings","service":"massage","date_range":"last_week"}`}, &stubAppointments{})
	intent, err := svc.Classify(context.Background(), "massage bookings last week")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if intent.Action != ActionFilterBookings {
		t.Errorf("action = %q", intent.Action)
	}
	if intent.Service == nil || *intent.Service != "massage" {
		t.Errorf("service = %v, want massage", intent.Service)
	}
	if intent.DateRange == nil || *intent.DateRange != "last_week" {
		t.Errorf("date_range = %v, want last_week", intent.DateRange)
	}
}

func TestExecute_FilterBookings(t *testing.T) {
	service := "massage"
	dateRange := "2024"
	store := &stubAppointments{records: []appointment.Record{{ID: "a1"}, {ID: "a2"}}}
	svc := NewService(&stubLLM{}, store)

	result, err := svc.Execute(context.Background(), Intent{
		Action:    ActionFilterBookings,
		Service:   &service,
		DateRange: &dateRange,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Kind != ResultBookings {
		t.Fatalf("kind = %v, want ResultBookings", result.Kind)
	}
	if len(result.Bookings) != 2 {
		t.Errorf("bookings = %d, want 2", len(result.Bookings))
	}
	if store.gotQuery == nil || store.gotQuery.Service == nil || *store.gotQuery.Service != "massage" {
		t.Errorf("store query service = %+v", store.gotQuery)
	}
	if store.gotQuery.From == nil || store.gotQuery.From.Year() != 2024 {
		t.Errorf("store query from = %v, want Jan 2024", store.gotQuery.From)
	}
	if store.gotQuery.To == nil || store.gotQuery.To.Month() != time.December {
		t.Errorf("store query to = %v, want Dec 2024", store.gotQuery.To)
	}
}

func TestExecute_FilterBookings_NilRecordsBecomeEmpty(t *testing.T) {
	svc := NewService(&stubLLM{}, &stubAppointments{records: nil})
	result, err := svc.Execute(context.Background(), Intent{Action: ActionFilterBookings})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Bookings == nil {
		t.Error("bookings is nil, want empty slice")
	}
}

func TestExecute_Revenue(t *testing.T) {
	service := "massage"
	store := &stubAppointments{revenue: 1234.5}
	svc := NewService(&stubLLM{}, store)

	// The service field is accepted but not applied to revenue.
	result, err := svc.Execute(context.Background(), Intent{Action: ActionGetRevenue, Service: &service})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Kind != ResultRevenue {
		t.Fatalf("kind = %v, want ResultRevenue", result.Kind)
	}
	if result.Revenue != 1234.5 {
		t.Errorf("revenue = %v, want 1234.5", result.Revenue)
	}
	if store.gotRev == nil {
		t.Fatal("revenue query never reached the store")
	}
	if store.gotRev.From != nil || store.gotRev.To != nil {
		t.Errorf("revenue without date_range should be unbounded, got %+v", store.gotRev)
	}
}

func TestExecute_UnrecognizedDateRangeMeansNoFilter(t *testing.T) {
	dateRange := "whenever"
	store := &stubAppointments{}
	svc := NewService(&stubLLM{}, store)

	if _, err := svc.Execute(context.Background(), Intent{Action: ActionFilterBookings, DateRange: &dateRange}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if store.gotQuery.From != nil || store.gotQuery.To != nil {
		t.Errorf("unrecognized token should leave bounds nil, got %+v", store.gotQuery)
	}
}

func TestExecute_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewService(&stubLLM{}, &stubAppointments{err: storeErr})

	if _, err := svc.Execute(context.Background(), Intent{Action: ActionFilterBookings}); !errors.Is(err, storeErr) {
		t.Errorf("Execute() error = %v, want store error", err)
	}
	if _, err := svc.Execute(context.Background(), Intent{Action: ActionGetRevenue}); !errors.Is(err, storeErr) {
		t.Errorf("Execute() error = %v, want store error", err)
	}
}

func TestExecute_FindActionsNotImplemented(t *testing.T) {
	finds := []Action{
		ActionFindAllClients, ActionFindActiveClients, ActionFindInactiveClients,
		ActionFindAllProviders, ActionFindActiveProviders, ActionFindInactiveProviders,
		ActionFindAllServices, ActionFindActiveServices, ActionFindInactiveServices,
	}
	svc := NewService(&stubLLM{}, &stubAppointments{})
	for _, a := range finds {
		result, err := svc.Execute(context.Background(), Intent{Action: a})
		if err != nil {
			t.Errorf("Execute(%q) error = %v", a, err)
			continue
		}
		if result.Kind != ResultNotImplemented {
			t.Errorf("Execute(%q) kind = %v, want ResultNotImplemented", a, result.Kind)
		}
	}
}

func TestClassifyThenExecute(t *testing.T) {
	store := &stubAppointments{revenue: 980}
	svc := NewService(&stubLLM{reply: `{"action":"get_revenue","date_range":"2024"}`}, store)

	intent, err := svc.Classify(context.Background(), "revenue for 2024")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	result, err := svc.Execute(context.Background(), *intent)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Kind != ResultRevenue || result.Revenue != 980 {
		t.Errorf("result = %+v", result)
	}
	if store.gotRev.From == nil || store.gotRev.From.Year() != 2024 {
		t.Errorf("revenue window = %+v, want 2024", store.gotRev)
	}
}
