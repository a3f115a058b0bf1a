package client

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestStore_SearchAndCRUD(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, CreateCommand{
		Fullname:          "Morgan Smith",
		Email:             "morgan@example.com",
		Phone:             "555-0101",
		InsuranceProvider: "Acme Health",
		PolicyNumber:      "PN-1",
		MemberID:          "M-1",
		IsActive:          true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create returned empty id")
	}

	if _, err := store.Create(ctx, CreateCommand{Fullname: "Jamie Park", Email: "jamie@example.com", IsActive: true}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	matches, err := store.Search(ctx, "smith")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 || matches[0].Fullname != "Morgan Smith" {
		t.Errorf("search matches = %+v", matches)
	}

	byPhone, err := store.Search(ctx, "555-01")
	if err != nil {
		t.Fatalf("search by phone: %v", err)
	}
	if len(byPhone) != 1 {
		t.Errorf("phone search matches = %d, want 1", len(byPhone))
	}

	newPhone := "555-0202"
	updated, err := store.Update(ctx, UpdateCommand{ID: created.ID, Phone: &newPhone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Phone != newPhone {
		t.Errorf("phone = %q, want %q", updated.Phone, newPhone)
	}
	if updated.Fullname != "Morgan Smith" {
		t.Errorf("untouched field changed: %q", updated.Fullname)
	}

	if _, err := store.Update(ctx, UpdateCommand{ID: "00000000-0000-0000-0000-000000000000", Phone: &newPhone}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing = %v, want ErrNotFound", err)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestStore_ListPagination(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	names := []string{"Alex Doe", "Blake Doe", "Casey Doe"}
	for _, n := range names {
		if _, err := store.Create(ctx, CreateCommand{Fullname: n, Email: strings.Fields(n)[0] + "@example.com", IsActive: true}); err != nil {
			t.Fatalf("create %s: %v", n, err)
		}
	}

	clients, total, err := store.List(ctx, 1, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(clients) != 2 {
		t.Errorf("page size = %d, want 2", len(clients))
	}
	if clients[0].Fullname != "Alex Doe" {
		t.Errorf("first = %q, want Alex Doe (fullname ascending)", clients[0].Fullname)
	}

	rest, _, err := store.List(ctx, 2, 2)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(rest) != 1 || rest[0].Fullname != "Casey Doe" {
		t.Errorf("page 2 = %+v", rest)
	}
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("PHYSIO_TEST_DSN")
	if dsn == "" {
		t.Skip("PHYSIO_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigration(ctx, db); err != nil {
		t.Fatalf("apply migration: %v", err)
	}

	if _, err := db.Exec(ctx, "TRUNCATE TABLE appointments, clients CASCADE"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	return NewStore(db)
}

func applyMigration(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	content, err := os.ReadFile(filepath.Join(root, "migrations", "0001_init.sql"))
	if err != nil {
		return err
	}
	cleaned := stripSQLComments(string(content))
	for _, stmt := range splitSQL(cleaned) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
