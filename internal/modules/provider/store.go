// README: Provider store backed by PostgreSQL; maintains the specialty join table.
package provider

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"physio/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// List returns all providers, newest first, each with its linked specialties.
func (s *Store) List(ctx context.Context) ([]Provider, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, fullname, COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(license_number, ''), is_active, created_at
		FROM providers
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Provider
	index := map[types.ID]int{}
	for rows.Next() {
		var p Provider
		if err := rows.Scan(&p.ID, &p.Fullname, &p.Email, &p.Phone,
			&p.LicenseNumber, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Specialties = []SpecialtyRef{}
		index[p.ID] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	links, err := s.db.Query(ctx, `
		SELECT ps.provider_id, sp.id, sp.name
		FROM provider_specialties ps
		JOIN specialties sp ON sp.id = ps.specialty_id`)
	if err != nil {
		return nil, err
	}
	defer links.Close()

	for links.Next() {
		var providerID string
		var ref SpecialtyRef
		if err := links.Scan(&providerID, &ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		if i, ok := index[types.ID(providerID)]; ok {
			out[i].Specialties = append(out[i].Specialties, ref)
		}
	}
	return out, links.Err()
}

func (s *Store) Create(ctx context.Context, cmd CreateCommand) (*Provider, error) {
	var p Provider
	err := s.db.QueryRow(ctx, `
		INSERT INTO providers (fullname, email, phone, license_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id, fullname, COALESCE(email, ''), COALESCE(phone, ''),
		          COALESCE(license_number, ''), is_active, created_at`,
		cmd.Fullname, cmd.Email, cmd.Phone, cmd.LicenseNumber,
	).Scan(&p.ID, &p.Fullname, &p.Email, &p.Phone, &p.LicenseNumber, &p.IsActive, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Specialties = []SpecialtyRef{}

	if err := s.insertLinks(ctx, p.ID, cmd.SpecialtyIDs); err != nil {
		// The provider row exists; a broken link set is logged by the caller.
		return &p, err
	}
	return &p, nil
}

// Update rewrites the provider row and replaces its specialty links.
func (s *Store) Update(ctx context.Context, cmd UpdateCommand) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE providers
		SET fullname = $1, email = $2, phone = $3, license_number = $4, is_active = $5
		WHERE id = $6`,
		cmd.Fullname, cmd.Email, cmd.Phone, cmd.LicenseNumber, cmd.IsActive, string(cmd.ID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM provider_specialties WHERE provider_id = $1`, string(cmd.ID)); err != nil {
		return err
	}
	return s.insertLinks(ctx, cmd.ID, cmd.SpecialtyIDs)
}

func (s *Store) insertLinks(ctx context.Context, providerID types.ID, specialtyIDs []types.ID) error {
	for _, sid := range specialtyIDs {
		if _, err := s.db.Exec(ctx, `
			INSERT INTO provider_specialties (provider_id, specialty_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, string(providerID), string(sid)); err != nil {
			return err
		}
	}
	return nil
}
