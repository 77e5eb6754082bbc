package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"txHumanizer/internal/model"
)

// Schema creates the tables the store writes to.
const Schema = `
CREATE TABLE IF NOT EXISTS tx_summaries (
	run_id       TEXT NOT NULL,
	line         BIGINT NOT NULL,
	chain_id     BIGINT NOT NULL,
	tx_hash      TEXT NOT NULL DEFAULT '',
	to_address   TEXT NOT NULL,
	module       TEXT NOT NULL,
	method       TEXT NOT NULL,
	selector     TEXT NOT NULL,
	lines        JSONB NOT NULL,
	actions      JSONB,
	humanized_at TIMESTAMPTZ NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (run_id, line)
);
CREATE TABLE IF NOT EXISTS tx_decode_errors (
	run_id     TEXT NOT NULL,
	line       BIGINT NOT NULL,
	chain_id   BIGINT NOT NULL,
	tx_hash    TEXT NOT NULL DEFAULT '',
	to_address TEXT NOT NULL DEFAULT '',
	selector   TEXT NOT NULL DEFAULT '',
	module     TEXT NOT NULL DEFAULT '',
	method     TEXT NOT NULL DEFAULT '',
	kind       TEXT NOT NULL,
	error      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (run_id, line)
);
CREATE TABLE IF NOT EXISTS humanizer_state (
	name           TEXT PRIMARY KEY,
	last_processed BIGINT NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS address_names (
	address TEXT PRIMARY KEY,
	name    TEXT NOT NULL
);
`

// Store provides Postgres persistence for summaries, run state and names.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates missing tables.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// PutSummaryBatch inserts or updates summaries keyed by run and input line.
func (s *Store) PutSummaryBatch(ctx context.Context, records []model.SummaryRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		lines, err := json.Marshal(r.Lines)
		if err != nil {
			return fmt.Errorf("marshal lines: %w", err)
		}
		var actions []byte
		if len(r.Actions) > 0 {
			if actions, err = json.Marshal(r.Actions); err != nil {
				return fmt.Errorf("marshal actions: %w", err)
			}
		}
		batch.Queue(`
			INSERT INTO tx_summaries (
				run_id, line, chain_id, tx_hash, to_address, module, method, selector,
				lines, actions, humanized_at, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,now(),now())
			ON CONFLICT (run_id, line)
			DO UPDATE SET
				tx_hash = EXCLUDED.tx_hash,
				to_address = EXCLUDED.to_address,
				module = EXCLUDED.module,
				method = EXCLUDED.method,
				selector = EXCLUDED.selector,
				lines = EXCLUDED.lines,
				actions = EXCLUDED.actions,
				humanized_at = EXCLUDED.humanized_at,
				updated_at = now()
		`,
			r.RunID,
			int64(r.Line),
			int64(r.ChainID),
			r.TxHash,
			r.To,
			r.Module,
			r.Method,
			r.Selector,
			lines,
			actions,
			r.HumanizedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// PutErrorBatch records transactions that failed to humanize.
func (s *Store) PutErrorBatch(ctx context.Context, errs []model.DecodeError) error {
	if len(errs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range errs {
		batch.Queue(`
			INSERT INTO tx_decode_errors (
				run_id, line, chain_id, tx_hash, to_address, selector, module, method, kind, error, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now())
			ON CONFLICT (run_id, line)
			DO UPDATE SET kind = EXCLUDED.kind, error = EXCLUDED.error
		`,
			e.RunID,
			int64(e.Line),
			int64(e.ChainID),
			e.TxHash,
			e.To,
			e.Selector,
			e.Module,
			e.Method,
			e.Kind,
			e.Error,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range errs {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns the last processed input line for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var last int64
	row := s.pool.QueryRow(ctx, `SELECT last_processed FROM humanizer_state WHERE name=$1`, name)
	if err := row.Scan(&last); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return uint64(last), true, nil
}

// SaveState upserts the last processed input line for a name.
func (s *Store) SaveState(ctx context.Context, name string, last uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO humanizer_state (name, last_processed, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_processed = EXCLUDED.last_processed, updated_at = now()
	`, name, int64(last))
	return err
}

// LoadNames returns the address book keyed by address as stored.
func (s *Store) LoadNames(ctx context.Context) (map[string]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT address, name FROM address_names`)
	if err != nil {
		return nil, fmt.Errorf("query names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var address, name string
		if err := rows.Scan(&address, &name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names[address] = name
	}
	return names, rows.Err()
}
