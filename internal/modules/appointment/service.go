// README: Appointment service: reads for the assist pipeline plus booking CRUD.
package appointment

import (
	"context"
	"math"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Filter serves the assist executor's filter_bookings read.
func (s *Service) Filter(ctx context.Context, q FilterQuery) ([]Record, error) {
	return s.store.Filter(ctx, q)
}

// Revenue serves the assist executor's get_revenue read.
func (s *Service) Revenue(ctx context.Context, q RevenueQuery) (float64, error) {
	return s.store.Revenue(ctx, q)
}

func (s *Service) List(ctx context.Context, q ListQuery) (*Page, error) {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}

	records, total, err := s.store.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return &Page{
		Records:    records,
		Total:      total,
		Page:       q.Page,
		TotalPages: int(math.Ceil(float64(total) / float64(q.Limit))),
	}, nil
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Record, error) {
	if cmd.ClientID == "" || cmd.ServiceID == "" || cmd.Name == "" || cmd.Date == "" || cmd.Time == "" {
		return nil, ErrBadRequest
	}
	if cmd.Status == 0 {
		cmd.Status = 1 // pending
	}

	id, err := s.store.Create(ctx, cmd)
	if err != nil {
		return nil, err
	}

	price := cmd.Price
	duration := cmd.Duration
	record := &Record{
		ID:            id,
		ClientID:      &cmd.ClientID,
		Name:          cmd.Name,
		Email:         cmd.Email,
		Date:          cmd.Date,
		Time:          cmd.Time,
		FinalDuration: &duration,
		FinalPrice:    &price,
	}
	if cmd.ProviderID != "" {
		record.ProviderID = &cmd.ProviderID
	}
	if cmd.ServiceName != "" {
		record.ServiceName = &cmd.ServiceName
	}
	return record, nil
}

// Stats groups all appointments by day, then by provider within the day.
func (s *Service) Stats(ctx context.Context) (map[string][]ProviderDayStat, error) {
	rows, err := s.store.StatRows(ctx)
	if err != nil {
		return nil, err
	}
	return GroupStats(rows), nil
}

// GroupStats accumulates per-provider booking count, revenue and minutes
// for each calendar day. Rows without a provider are skipped upstream.
func GroupStats(rows []StatRow) map[string][]ProviderDayStat {
	grouped := make(map[string][]ProviderDayStat)
	for _, row := range rows {
		day := grouped[row.Date]

		found := false
		for i := range day {
			if day[i].ID == row.ProviderID {
				day[i].Count++
				day[i].Price += row.FinalPrice
				day[i].Duration += row.FinalDuration
				found = true
				break
			}
		}
		if !found {
			day = append(day, ProviderDayStat{
				ID:       row.ProviderID,
				Name:     row.ProviderName,
				Count:    1,
				Price:    row.FinalPrice,
				Duration: row.FinalDuration,
			})
		}
		grouped[row.Date] = day
	}
	return grouped
}
