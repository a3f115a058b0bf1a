// README: Client store backed by PostgreSQL.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

const clientColumns = `id, fullname, email, phone,
	COALESCE(insurance_provider, ''), COALESCE(policy_number, ''), COALESCE(member_id, ''), is_active`

// Search matches active clients by name, email, or phone for the
// booking drawer; capped at five rows.
func (s *Store) Search(ctx context.Context, term string) ([]Summary, error) {
	pattern := "%" + term + "%"
	rows, err := s.db.Query(ctx, `
		SELECT id, fullname, email, phone
		FROM clients
		WHERE is_active
		  AND (fullname ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1)
		LIMIT 5`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var c Summary
		if err := rows.Scan(&c.ID, &c.Fullname, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) List(ctx context.Context, page, limit int) ([]Client, int, error) {
	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		ORDER BY fullname ASC
		LIMIT $1 OFFSET $2`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Fullname, &c.Email, &c.Phone,
			&c.InsuranceProvider, &c.PolicyNumber, &c.MemberID, &c.IsActive); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (s *Store) Create(ctx context.Context, cmd CreateCommand) (*Client, error) {
	var c Client
	err := s.db.QueryRow(ctx, `
		INSERT INTO clients (fullname, email, phone, insurance_provider, policy_number, member_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+clientColumns,
		cmd.Fullname, cmd.Email, cmd.Phone,
		cmd.InsuranceProvider, cmd.PolicyNumber, cmd.MemberID, cmd.IsActive,
	).Scan(&c.ID, &c.Fullname, &c.Email, &c.Phone,
		&c.InsuranceProvider, &c.PolicyNumber, &c.MemberID, &c.IsActive)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update applies only the provided fields.
func (s *Store) Update(ctx context.Context, cmd UpdateCommand) (*Client, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if cmd.Fullname != nil {
		add("fullname", *cmd.Fullname)
	}
	if cmd.Email != nil {
		add("email", *cmd.Email)
	}
	if cmd.Phone != nil {
		add("phone", *cmd.Phone)
	}
	if cmd.InsuranceProvider != nil {
		add("insurance_provider", *cmd.InsuranceProvider)
	}
	if cmd.PolicyNumber != nil {
		add("policy_number", *cmd.PolicyNumber)
	}
	if cmd.MemberID != nil {
		add("member_id", *cmd.MemberID)
	}
	if cmd.IsActive != nil {
		add("is_active", *cmd.IsActive)
	}
	if len(sets) == 0 {
		return nil, ErrBadRequest
	}

	args = append(args, string(cmd.ID))
	query := fmt.Sprintf(`UPDATE clients SET %s WHERE id = $%d RETURNING `+clientColumns,
		strings.Join(sets, ", "), len(args))

	var c Client
	err := s.db.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Fullname, &c.Email, &c.Phone,
		&c.InsuranceProvider, &c.PolicyNumber, &c.MemberID, &c.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
