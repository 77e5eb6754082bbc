package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StateStore persists the last input line a run has fully processed.
type StateStore interface {
	Load(ctx context.Context) (uint64, bool, error)
	Save(ctx context.Context, lastLine uint64) error
}

// Checkpoint tracks the last processed input line.
type Checkpoint struct {
	LastProcessedLine uint64 `json:"last_processed_line"`
	UpdatedAt         string `json:"updated_at"`
}

// FileStateStore persists checkpoints to disk.
type FileStateStore struct {
	path    string
	enabled bool
}

func NewFileStateStore(path string, enabled bool) *FileStateStore {
	return &FileStateStore{path: path, enabled: enabled}
}

func (c *FileStateStore) Load(context.Context) (uint64, bool, error) {
	if !c.enabled {
		return 0, false, nil
	}

	stat, err := os.Stat(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("stat checkpoint: %w", err)
	}
	if stat.IsDir() {
		return 0, false, fmt.Errorf("checkpoint path is a directory")
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return 0, false, fmt.Errorf("read checkpoint: %w", err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return 0, false, fmt.Errorf("parse checkpoint: %w", err)
	}
	return cp.LastProcessedLine, true, nil
}

func (c *FileStateStore) Save(_ context.Context, lastLine uint64) error {
	if !c.enabled {
		return nil
	}

	dir := filepath.Dir(c.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create checkpoint dir: %w", err)
		}
	}

	cp := Checkpoint{
		LastProcessedLine: lastLine,
		UpdatedAt:         time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint tmp: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		return fmt.Errorf("rename checkpoint: %w", err)
	}
	return nil
}

// StateDB is the named-state subset of the Postgres store.
type StateDB interface {
	LoadState(ctx context.Context, name string) (uint64, bool, error)
	SaveState(ctx context.Context, name string, last uint64) error
}

// DBStateStore keeps the checkpoint in a database row.
type DBStateStore struct {
	db   StateDB
	name string
}

func NewDBStateStore(db StateDB, name string) *DBStateStore {
	return &DBStateStore{db: db, name: name}
}

func (s *DBStateStore) Load(ctx context.Context) (uint64, bool, error) {
	last, ok, err := s.db.LoadState(ctx, s.name)
	if err != nil {
		return 0, false, fmt.Errorf("load state %s: %w", s.name, err)
	}
	return last, ok, nil
}

func (s *DBStateStore) Save(ctx context.Context, lastLine uint64) error {
	if err := s.db.SaveState(ctx, s.name, lastLine); err != nil {
		return fmt.Errorf("save state %s: %w", s.name, err)
	}
	return nil
}
