package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"txHumanizer/internal/model"
)

// JsonlStorage appends summaries and errors to JSONL files. An empty error
// path drops errors.
type JsonlStorage struct {
	path      string
	errorPath string
	mu        sync.Mutex
}

func NewJsonlStorage(path, errorPath string) *JsonlStorage {
	return &JsonlStorage{path: path, errorPath: errorPath}
}

// PutSummaryBatch appends a batch of summaries as JSON lines.
func (s *JsonlStorage) PutSummaryBatch(_ context.Context, records []model.SummaryRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]interface{}, len(records))
	for i := range records {
		rows[i] = records[i]
	}
	return s.appendLines(s.path, rows)
}

// PutErrorBatch appends a batch of decode errors as JSON lines.
func (s *JsonlStorage) PutErrorBatch(_ context.Context, errs []model.DecodeError) error {
	if len(errs) == 0 || s.errorPath == "" {
		return nil
	}
	rows := make([]interface{}, len(errs))
	for i := range errs {
		rows[i] = errs[i]
	}
	return s.appendLines(s.errorPath, rows)
}

func (s *JsonlStorage) appendLines(path string, rows []interface{}) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, row := range rows {
		line, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
