// Package sqlite provides the SQLite-backed local record store: committed
// bindings and connection history survive the process so `bindings list`
// and `bindings history` work without the backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/pulseboard/pulseboard-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driven"
)

// Store is a SQLite-backed store providing the binding and event store
// interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.pulseboard/data/records.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pulseboard", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "records.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// BindingStore returns a BindingStore interface backed by this store.
func (s *Store) BindingStore() driven.BindingStore {
	return &bindingStore{store: s}
}

// EventStore returns an EventStore interface backed by this store.
func (s *Store) EventStore() driven.EventStore {
	return &eventStore{store: s}
}

// migrate applies embedded SQL migrations in filename order, tracking
// applied names in schema_migrations.
func (s *Store) migrate(fsys fs.FS) error {
	if _, err := s.db.Exec(
		`CREATE TABLE IF NOT EXISTS schema_migrations (name TEXT PRIMARY KEY)`,
	); err != nil {
		return err
	}

	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		var applied int
		err := s.db.QueryRow(
			`SELECT COUNT(*) FROM schema_migrations WHERE name = ?`, name,
		).Scan(&applied)
		if err != nil {
			return err
		}
		if applied > 0 {
			continue
		}

		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(string(script)); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(
			`INSERT INTO schema_migrations (name) VALUES (?)`, name,
		); err != nil {
			return err
		}
	}
	return nil
}

// bindingStore implements driven.BindingStore.
type bindingStore struct {
	store *Store
}

var _ driven.BindingStore = (*bindingStore)(nil)

func (b *bindingStore) Save(ctx context.Context, binding domain.ProjectBinding) error {
	_, err := b.store.db.ExecContext(ctx, `
		INSERT INTO project_bindings (project_id, provider_id, field, value, warning, committed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (project_id, provider_id) DO UPDATE SET
			field = excluded.field,
			value = excluded.value,
			warning = excluded.warning,
			committed_at = excluded.committed_at`,
		binding.ProjectID, string(binding.ProviderID), binding.Field,
		binding.Value, binding.Warning, binding.CommittedAt.UTC(),
	)
	return err
}

func (b *bindingStore) Get(ctx context.Context, projectID string, provider domain.ProviderID) (*domain.ProjectBinding, error) {
	row := b.store.db.QueryRowContext(ctx, `
		SELECT project_id, provider_id, field, value, warning, committed_at
		FROM project_bindings
		WHERE project_id = ? AND provider_id = ?`,
		projectID, string(provider),
	)
	binding, err := scanBinding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return binding, err
}

func (b *bindingStore) List(ctx context.Context, projectID string) ([]domain.ProjectBinding, error) {
	rows, err := b.store.db.QueryContext(ctx, `
		SELECT project_id, provider_id, field, value, warning, committed_at
		FROM project_bindings
		WHERE project_id = ?
		ORDER BY provider_id`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.ProjectBinding, 0)
	for rows.Next() {
		binding, err := scanBinding(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *binding)
	}
	return result, rows.Err()
}

func (b *bindingStore) Delete(ctx context.Context, projectID string, provider domain.ProviderID) error {
	_, err := b.store.db.ExecContext(ctx,
		`DELETE FROM project_bindings WHERE project_id = ? AND provider_id = ?`,
		projectID, string(provider),
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBinding(row rowScanner) (*domain.ProjectBinding, error) {
	var binding domain.ProjectBinding
	var provider string
	var committedAt time.Time
	if err := row.Scan(
		&binding.ProjectID, &provider, &binding.Field,
		&binding.Value, &binding.Warning, &committedAt,
	); err != nil {
		return nil, err
	}
	binding.ProviderID = domain.ProviderID(provider)
	binding.CommittedAt = committedAt
	return &binding, nil
}

// eventStore implements driven.EventStore.
type eventStore struct {
	store *Store
}

var _ driven.EventStore = (*eventStore)(nil)

func (e *eventStore) Record(ctx context.Context, event domain.ConnectionEvent) error {
	_, err := e.store.db.ExecContext(ctx, `
		INSERT INTO connection_events (id, project_id, provider_id, outcome, detail, at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, event.ProjectID, string(event.ProviderID),
		event.Outcome, event.Detail, event.At.UTC(),
	)
	return err
}

func (e *eventStore) ListByProject(ctx context.Context, projectID string) ([]domain.ConnectionEvent, error) {
	rows, err := e.store.db.QueryContext(ctx, `
		SELECT id, project_id, provider_id, outcome, detail, at
		FROM connection_events
		WHERE project_id = ?
		ORDER BY at DESC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.ConnectionEvent, 0)
	for rows.Next() {
		var event domain.ConnectionEvent
		var provider string
		if err := rows.Scan(
			&event.ID, &event.ProjectID, &provider,
			&event.Outcome, &event.Detail, &event.At,
		); err != nil {
			return nil, err
		}
		event.ProviderID = domain.ProviderID(provider)
		result = append(result, event)
	}
	return result, rows.Err()
}
