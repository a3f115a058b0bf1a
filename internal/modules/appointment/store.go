// README: Appointment store backed by PostgreSQL.
package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"physio/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const recordColumns = `
	a.id, a.client_id, a.provider_id, a.service_definition_id,
	a.name, a.email, a.date::text, a.time::text, a.service_name,
	a.final_duration, a.final_price, a.created_at,
	st.id, st.name,
	sd.name, sp.name,
	p.id, p.fullname`

const recordJoins = `
	FROM appointments a
	LEFT JOIN status st ON st.id = a.status
	LEFT JOIN service_definitions sd ON sd.id = a.service_definition_id
	LEFT JOIN specialties sp ON sp.id = sd.specialty_id
	LEFT JOIN providers p ON p.id = a.provider_id`

// Filter returns records matching the exact service name and/or the
// inclusive date window, with joined display fields.
func (s *Store) Filter(ctx context.Context, q FilterQuery) ([]Record, error) {
	where, args := buildConditions(nil, nil, filterArgs{
		service: q.Service,
		from:    q.From,
		to:      q.To,
	})

	rows, err := s.db.Query(ctx, "SELECT"+recordColumns+recordJoins+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Revenue sums final_price over the window, treating NULL prices as 0.
func (s *Store) Revenue(ctx context.Context, q RevenueQuery) (float64, error) {
	where, args := buildConditions(nil, nil, filterArgs{from: q.From, to: q.To})

	var total float64
	err := s.db.QueryRow(ctx,
		"SELECT COALESCE(SUM(COALESCE(final_price, 0)), 0) FROM appointments a"+where,
		args...,
	).Scan(&total)
	return total, err
}

// List returns one page of records ordered by date then time, newest
// first, plus the unpaginated match count.
func (s *Store) List(ctx context.Context, q ListQuery) ([]Record, int, error) {
	fa := filterArgs{from: q.StartDate, to: q.EndDate, statusID: q.StatusID, providerID: q.ProviderID}
	where, args := buildConditions(nil, nil, fa)

	var total int
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM appointments a"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	query := "SELECT" + recordColumns + recordJoins + where +
		fmt.Sprintf(" ORDER BY a.date DESC, a.time DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, q.Limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Create inserts a booking and returns the generated id.
func (s *Store) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	var id string
	var providerArg interface{}
	if cmd.ProviderID != "" {
		providerArg = string(cmd.ProviderID)
	}
	err := s.db.QueryRow(ctx, `
		INSERT INTO appointments (
			client_id, provider_id, service_definition_id,
			name, email, date, time, service_name, final_duration, final_price, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		string(cmd.ClientID),
		providerArg,
		string(cmd.ServiceID),
		cmd.Name,
		cmd.Email,
		cmd.Date,
		cmd.Time,
		cmd.ServiceName,
		cmd.Duration,
		cmd.Price,
		cmd.Status,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return types.ID(id), nil
}

// StatRows fetches every appointment that has a provider, for the
// dashboard grouping.
func (s *Store) StatRows(ctx context.Context) ([]StatRow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT a.date::text, p.id, p.fullname,
		       COALESCE(a.final_price, 0), COALESCE(a.final_duration, 0)
		FROM appointments a
		JOIN providers p ON p.id = a.provider_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatRow
	for rows.Next() {
		var r StatRow
		var providerID string
		if err := rows.Scan(&r.Date, &providerID, &r.ProviderName, &r.FinalPrice, &r.FinalDuration); err != nil {
			return nil, err
		}
		r.ProviderID = types.ID(providerID)
		out = append(out, r)
	}
	return out, rows.Err()
}

type filterArgs struct {
	service    *string
	from       *time.Time
	to         *time.Time
	statusID   *int
	providerID *types.ID
}

// buildConditions assembles the shared WHERE clause. Date bounds compare
// against the DATE column, so only the calendar day matters.
func buildConditions(conds []string, args []interface{}, fa filterArgs) (string, []interface{}) {
	add := func(expr string, v interface{}) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if fa.service != nil {
		add("a.service_name = $%d", *fa.service)
	}
	if fa.from != nil {
		add("a.date >= $%d", fa.from.Format("2006-01-02"))
	}
	if fa.to != nil {
		add("a.date <= $%d", fa.to.Format("2006-01-02"))
	}
	if fa.statusID != nil {
		add("a.status = $%d", *fa.statusID)
	}
	if fa.providerID != nil {
		add("a.provider_id = $%d", string(*fa.providerID))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanRecords(rows pgx.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var r Record
		var clientID, providerID, serviceDefID, serviceName sql.NullString
		var finalDuration sql.NullInt64
		var finalPrice sql.NullFloat64
		var statusID sql.NullInt64
		var statusName, sdName, spName sql.NullString
		var pID, pName sql.NullString

		err := rows.Scan(
			&r.ID, &clientID, &providerID, &serviceDefID,
			&r.Name, &r.Email, &r.Date, &r.Time, &serviceName,
			&finalDuration, &finalPrice, &r.CreatedAt,
			&statusID, &statusName,
			&sdName, &spName,
			&pID, &pName,
		)
		if err != nil {
			return nil, err
		}

		r.ClientID = toIDPtr(clientID)
		r.ProviderID = toIDPtr(providerID)
		r.ServiceDefinitionID = toIDPtr(serviceDefID)
		if serviceName.Valid {
			r.ServiceName = &serviceName.String
		}
		if finalDuration.Valid {
			d := int(finalDuration.Int64)
			r.FinalDuration = &d
		}
		if finalPrice.Valid {
			p := finalPrice.Float64
			r.FinalPrice = &p
		}
		if statusID.Valid {
			r.Status = &StatusRef{ID: int(statusID.Int64), Name: statusName.String}
		}
		if sdName.Valid {
			ref := &ServiceRef{Name: sdName.String}
			if spName.Valid {
				ref.Specialty = &spName.String
			}
			r.ServiceDefinition = ref
		}
		if pID.Valid {
			r.Provider = &ProviderRef{ID: types.ID(pID.String), Fullname: pName.String}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func toIDPtr(v sql.NullString) *types.ID {
	if !v.Valid {
		return nil
	}
	id := types.ID(v.String)
	return &id
}
