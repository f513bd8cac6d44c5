// Package repo contains all database access for the EasyEEA backend.
// A travel project is persisted the way the original client saved it: as one
// JSON snapshot per project, with date-typed fields reconstructed from their
// serialized form on load. Only SQL and type mapping live here.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/larsenwood/easy-eea/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProjectRepo defines the persistence operations for travel projects.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type ProjectRepo interface {
	// Create inserts a new project snapshot and returns the persisted record
	// (with DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, p domain.TravelProject) (domain.TravelProject, error)

	// GetByID retrieves a single project by its UUID primary key.
	// Returns domain.ErrNotFound if no project with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.TravelProject, error)

	// List returns all projects ordered by creation time descending.
	List(ctx context.Context) ([]domain.TravelProject, error)

	// Update overwrites an existing project's snapshot and returns the updated
	// record. Returns domain.ErrNotFound if no project with that ID exists.
	Update(ctx context.Context, p domain.TravelProject) (domain.TravelProject, error)

	// Delete removes a project by ID. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgProjectRepo is the Postgres implementation of ProjectRepo.
type pgProjectRepo struct {
	db db
}

// NewProjectRepo constructs a ProjectRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewProjectRepo(db db) ProjectRepo {
	return &pgProjectRepo{db: db}
}

// Create inserts a new project row and returns the full persisted record.
func (r *pgProjectRepo) Create(ctx context.Context, p domain.TravelProject) (domain.TravelProject, error) {
	snapshot, err := json.Marshal(p)
	if err != nil {
		return domain.TravelProject{}, fmt.Errorf("repo.ProjectRepo.Create: marshal snapshot: %w", err)
	}

	const q = `
		INSERT INTO projects (name, snapshot)
		VALUES (@name, @snapshot)
		RETURNING id, name, snapshot, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": p.Name, "snapshot": snapshot})
	result, err := scanProject(row)
	if err != nil {
		return domain.TravelProject{}, fmt.Errorf("repo.ProjectRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a project by primary key.
func (r *pgProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TravelProject, error) {
	const q = `
		SELECT id, name, snapshot, created_at, updated_at
		FROM projects
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanProject(row)
	if err != nil {
		return domain.TravelProject{}, fmt.Errorf("repo.ProjectRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all projects ordered by creation time descending (most recent first).
func (r *pgProjectRepo) List(ctx context.Context) ([]domain.TravelProject, error) {
	const q = `
		SELECT id, name, snapshot, created_at, updated_at
		FROM projects
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ProjectRepo.List: %w", err)
	}
	defer rows.Close()

	var projects []domain.TravelProject
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ProjectRepo.List: scan: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ProjectRepo.List: rows: %w", err)
	}

	return projects, nil
}

// Update overwrites the project's snapshot and returns the updated record.
func (r *pgProjectRepo) Update(ctx context.Context, p domain.TravelProject) (domain.TravelProject, error) {
	snapshot, err := json.Marshal(p)
	if err != nil {
		return domain.TravelProject{}, fmt.Errorf("repo.ProjectRepo.Update: marshal snapshot: %w", err)
	}

	const q = `
		UPDATE projects
		SET name       = @name,
		    snapshot   = @snapshot,
		    updated_at = now()
		WHERE id = @id
		RETURNING id, name, snapshot, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":       p.ID,
		"name":     p.Name,
		"snapshot": snapshot,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanProject(row)
	if err != nil {
		return domain.TravelProject{}, fmt.Errorf("repo.ProjectRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a project by primary key.
func (r *pgProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM projects WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ProjectRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ProjectRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanProject to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanProject maps a single database row into a domain.TravelProject.
// The snapshot JSON is the source of truth for the project's content; the
// id/name/timestamp columns are authoritative for their fields and overwrite
// whatever the snapshot carried.
func scanProject(s scanner) (domain.TravelProject, error) {
	var (
		id        pgtype.UUID
		name      string
		snapshot  []byte
		createdAt time.Time
		updatedAt time.Time
	)

	if err := s.Scan(&id, &name, &snapshot, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TravelProject{}, domain.ErrNotFound
		}
		return domain.TravelProject{}, err
	}

	var p domain.TravelProject
	if err := json.Unmarshal(snapshot, &p); err != nil {
		return domain.TravelProject{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	p.ID = uuid.UUID(id.Bytes)
	p.Name = name
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt

	return p, nil
}
