package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/leadscout/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS resolve_cache (
	query_key  TEXT PRIMARY KEY,
	places     TEXT NOT NULL,
	cached_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS batch_runs (
	id          TEXT PRIMARY KEY,
	status      TEXT NOT NULL DEFAULT 'running',
	total       INTEGER NOT NULL,
	resolved    INTEGER NOT NULL DEFAULT 0,
	started_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	finished_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_resolve_cache_expires_at ON resolve_cache(expires_at);
CREATE INDEX IF NOT EXISTS idx_batch_runs_status ON batch_runs(status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetCachedResolve(ctx context.Context, queryKey string) ([]model.ResolvedPlace, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT places FROM resolve_cache WHERE query_key = ? AND expires_at > ?`,
		queryKey, time.Now().UTC(),
	)

	var placesJSON string
	if err := row.Scan(&placesJSON); err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, eris.Wrapf(err, "sqlite: get cached resolve %s", queryKey)
	}

	var places []model.ResolvedPlace
	if err := json.Unmarshal([]byte(placesJSON), &places); err != nil {
		return nil, false, eris.Wrap(err, "sqlite: unmarshal cached places")
	}
	return places, true, nil
}

func (s *SQLiteStore) SetCachedResolve(ctx context.Context, queryKey string, places []model.ResolvedPlace, ttl time.Duration) error {
	placesJSON, err := json.Marshal(places)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal places")
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO resolve_cache (query_key, places, cached_at, expires_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(query_key) DO UPDATE SET places = excluded.places,
			cached_at = excluded.cached_at, expires_at = excluded.expires_at`,
		queryKey, string(placesJSON), now, now.Add(ttl),
	)
	return eris.Wrapf(err, "sqlite: set cached resolve %s", queryKey)
}

func (s *SQLiteStore) DeleteExpiredResolves(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM resolve_cache WHERE expires_at <= ?`, time.Now().UTC(),
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete expired resolves")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: rows affected")
	}
	return int(n), nil
}

func (s *SQLiteStore) CreateBatchRun(ctx context.Context, total int) (*model.BatchRun, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO batch_runs (id, status, total, started_at) VALUES (?, ?, ?, ?)`,
		id, string(model.BatchRunning), total, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert batch run")
	}

	return &model.BatchRun{
		ID:        id,
		Status:    model.BatchRunning,
		Total:     total,
		StartedAt: now,
	}, nil
}

func (s *SQLiteStore) FinishBatchRun(ctx context.Context, id string, resolved int, status model.BatchStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE batch_runs SET status = ?, resolved = ?, finished_at = ? WHERE id = ?`,
		string(status), resolved, time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finish batch run %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: batch run %s not found", id)
	}
	return nil
}

func (s *SQLiteStore) GetBatchRun(ctx context.Context, id string) (*model.BatchRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, status, total, resolved, started_at, finished_at FROM batch_runs WHERE id = ?`,
		id,
	)

	var run model.BatchRun
	var status string
	var finished sql.NullTime
	if err := row.Scan(&run.ID, &status, &run.Total, &run.Resolved, &run.StartedAt, &finished); err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Errorf("sqlite: batch run %s not found", id)
		}
		return nil, eris.Wrapf(err, "sqlite: get batch run %s", id)
	}
	run.Status = model.BatchStatus(status)
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return &run, nil
}
