// README: Catalog store backed by PostgreSQL.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"physio/internal/types"
)

// Postgres unique_violation, raised when a specialty name or slug collides.
const uniqueViolationCode = "23505"

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ListServices returns service definitions, newest first, with their
// rate tiers attached.
func (s *Store) ListServices(ctx context.Context) ([]ServiceDefinition, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, specialty_id, name, base_duration, base_price, created_at
		FROM service_definitions
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	defs, index, err := scanServiceDefs(rows)
	if err != nil {
		return nil, err
	}

	tiers, err := s.db.Query(ctx, `
		SELECT id, service_definition_id, duration_minutes, price
		FROM rates_chart`)
	if err != nil {
		return nil, err
	}
	defer tiers.Close()

	for tiers.Next() {
		var t RateTier
		var sdID string
		if err := tiers.Scan(&t.ID, &sdID, &t.DurationMinutes, &t.Price); err != nil {
			return nil, err
		}
		t.ServiceDefinitionID = types.ID(sdID)
		if i, ok := index[t.ServiceDefinitionID]; ok {
			defs[i].RatesChart = append(defs[i].RatesChart, t)
		}
	}
	return defs, tiers.Err()
}

func (s *Store) CreateService(ctx context.Context, cmd CreateServiceCommand) (*ServiceDefinition, error) {
	var def ServiceDefinition
	var specialtyID sql.NullString
	var specialtyArg interface{}
	if cmd.SpecialtyID != "" {
		specialtyArg = string(cmd.SpecialtyID)
	}
	err := s.db.QueryRow(ctx, `
		INSERT INTO service_definitions (specialty_id, name, base_duration, base_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, specialty_id, name, base_duration, base_price, created_at`,
		specialtyArg, cmd.Name, cmd.BaseDuration, cmd.BasePrice,
	).Scan(&def.ID, &specialtyID, &def.Name, &def.BaseDuration, &def.BasePrice, &def.CreatedAt)
	if err != nil {
		return nil, err
	}
	if specialtyID.Valid {
		id := types.ID(specialtyID.String)
		def.SpecialtyID = &id
	}
	def.RatesChart = []RateTier{}

	for _, r := range cmd.Rates {
		tier, err := s.AddRate(ctx, RateTier{
			ServiceDefinitionID: def.ID,
			DurationMinutes:     r.DurationMinutes,
			Price:               r.Price,
		})
		if err != nil {
			return nil, err
		}
		def.RatesChart = append(def.RatesChart, *tier)
	}
	return &def, nil
}

func (s *Store) UpdateService(ctx context.Context, cmd UpdateServiceCommand) (*ServiceDefinition, error) {
	var def ServiceDefinition
	var specialtyID sql.NullString
	err := s.db.QueryRow(ctx, `
		UPDATE service_definitions
		SET name = $1, base_duration = $2, base_price = $3
		WHERE id = $4
		RETURNING id, specialty_id, name, base_duration, base_price, created_at`,
		cmd.Name, cmd.BaseDuration, cmd.BasePrice, string(cmd.ID),
	).Scan(&def.ID, &specialtyID, &def.Name, &def.BaseDuration, &def.BasePrice, &def.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if specialtyID.Valid {
		id := types.ID(specialtyID.String)
		def.SpecialtyID = &id
	}
	return &def, nil
}

func (s *Store) DeleteService(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM service_definitions WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) AddRate(ctx context.Context, tier RateTier) (*RateTier, error) {
	var out RateTier
	var sdID string
	err := s.db.QueryRow(ctx, `
		INSERT INTO rates_chart (service_definition_id, duration_minutes, price)
		VALUES ($1, $2, $3)
		RETURNING id, service_definition_id, duration_minutes, price`,
		string(tier.ServiceDefinitionID), tier.DurationMinutes, tier.Price,
	).Scan(&out.ID, &sdID, &out.DurationMinutes, &out.Price)
	if err != nil {
		return nil, err
	}
	out.ServiceDefinitionID = types.ID(sdID)
	return &out, nil
}

func (s *Store) DeleteRate(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM rates_chart WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSpecialties returns specialties alphabetically with their nested
// service definitions and rate tiers.
func (s *Store) ListSpecialties(ctx context.Context) ([]Specialty, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, is_active
		FROM specialties
		ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Specialty
	index := map[types.ID]int{}
	for rows.Next() {
		var sp Specialty
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.IsActive); err != nil {
			return nil, err
		}
		sp.Services = []ServiceDefinition{}
		index[sp.ID] = len(out)
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	defs, err := s.db.Query(ctx, `
		SELECT sd.id, sd.specialty_id, sd.name, sd.base_duration, sd.base_price, sd.created_at
		FROM service_definitions sd
		WHERE sd.specialty_id IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer defs.Close()

	defList, defIndex, err := scanServiceDefs(defs)
	if err != nil {
		return nil, err
	}

	tiers, err := s.db.Query(ctx, `
		SELECT id, service_definition_id, duration_minutes, price
		FROM rates_chart`)
	if err != nil {
		return nil, err
	}
	defer tiers.Close()

	for tiers.Next() {
		var t RateTier
		var sdID string
		if err := tiers.Scan(&t.ID, &sdID, &t.DurationMinutes, &t.Price); err != nil {
			return nil, err
		}
		t.ServiceDefinitionID = types.ID(sdID)
		if i, ok := defIndex[t.ServiceDefinitionID]; ok {
			defList[i].RatesChart = append(defList[i].RatesChart, t)
		}
	}
	if err := tiers.Err(); err != nil {
		return nil, err
	}

	for _, def := range defList {
		if def.SpecialtyID == nil {
			continue
		}
		if i, ok := index[*def.SpecialtyID]; ok {
			out[i].Services = append(out[i].Services, def)
		}
	}
	return out, nil
}

func (s *Store) CreateSpecialty(ctx context.Context, name, slug string, description *string) (*Specialty, error) {
	var sp Specialty
	err := s.db.QueryRow(ctx, `
		INSERT INTO specialties (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id, name, slug, description, is_active`,
		name, slug, description,
	).Scan(&sp.ID, &sp.Name, &sp.Slug, &sp.Description, &sp.IsActive)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	sp.Services = []ServiceDefinition{}
	return &sp, nil
}

func (s *Store) UpdateSpecialty(ctx context.Context, cmd UpdateSpecialtyCommand, slug *string) (*Specialty, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if cmd.Name != nil {
		add("name", *cmd.Name)
	}
	if slug != nil {
		add("slug", *slug)
	}
	if cmd.IsActive != nil {
		add("is_active", *cmd.IsActive)
	}
	if len(sets) == 0 {
		return nil, ErrBadRequest
	}

	args = append(args, string(cmd.ID))
	query := fmt.Sprintf(`
		UPDATE specialties SET %s WHERE id = $%d
		RETURNING id, name, slug, description, is_active`,
		strings.Join(sets, ", "), len(args))

	var sp Specialty
	err := s.db.QueryRow(ctx, query, args...).Scan(&sp.ID, &sp.Name, &sp.Slug, &sp.Description, &sp.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	sp.Services = []ServiceDefinition{}
	return &sp, nil
}

// DeactivateSpecialty is a soft delete: the row stays for history.
func (s *Store) DeactivateSpecialty(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `UPDATE specialties SET is_active = FALSE WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListStatuses(ctx context.Context) ([]Status, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name FROM status ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Status
	for rows.Next() {
		var st Status
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func scanServiceDefs(rows pgx.Rows) ([]ServiceDefinition, map[types.ID]int, error) {
	var defs []ServiceDefinition
	index := map[types.ID]int{}
	for rows.Next() {
		var def ServiceDefinition
		var specialtyID sql.NullString
		if err := rows.Scan(&def.ID, &specialtyID, &def.Name, &def.BaseDuration, &def.BasePrice, &def.CreatedAt); err != nil {
			return nil, nil, err
		}
		if specialtyID.Valid {
			id := types.ID(specialtyID.String)
			def.SpecialtyID = &id
		}
		def.RatesChart = []RateTier{}
		index[def.ID] = len(defs)
		defs = append(defs, def)
	}
	return defs, index, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
