// Package pipeline humanizes a JSONL stream of transactions in batches,
// writing summaries and failures to storage and checkpointing progress.
package pipeline

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"txHumanizer/internal/humanizer"
	"txHumanizer/internal/model"
	"txHumanizer/internal/storage"
)

const maxLineBytes = 4 << 20

// Error kinds recorded for lines that never reach the engine.
const (
	KindInput    = "input"
	KindEnrich   = "enrich"
	KindInternal = "internal"
)

// RunConfig holds runtime settings for a humanize run.
type RunConfig struct {
	RunID     string
	InputPath string
	BatchSize int
	Extended  bool
	Mined     bool
	// ChainID fills records that carry none.
	ChainID uint64
}

// Enricher adds on-chain metadata before a transaction is humanized.
type Enricher interface {
	Enrich(ctx context.Context, tx model.TransactionRecord, info *model.HumanizerInfo) (*model.HumanizerInfo, humanizer.ContractMeta, error)
}

// Stats counts the outcome of each processed line.
type Stats struct {
	Total     int `json:"total"`
	Humanized int `json:"humanized"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Runner streams transactions through the engine and writes the results.
type Runner struct {
	cfg      RunConfig
	engine   *humanizer.Engine
	info     *model.HumanizerInfo
	enricher Enricher
	storage  storage.Storage
	state    StateStore
	logger   *zap.Logger
	now      func() time.Time

	summaries []model.SummaryRecord
	failures  []model.DecodeError
}

// NewRunner builds a Runner with its dependencies. enricher and state may
// be nil.
func NewRunner(cfg RunConfig, engine *humanizer.Engine, info *model.HumanizerInfo, enricher Enricher, sink storage.Storage, state StateStore, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}
	return &Runner{
		cfg:      cfg,
		engine:   engine,
		info:     info,
		enricher: enricher,
		storage:  sink,
		state:    state,
		logger:   logger,
		now:      time.Now,
	}
}

// RunID identifies the run in every written record.
func (r *Runner) RunID() string {
	return r.cfg.RunID
}

// Run processes the configured input file.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	file, err := os.Open(r.cfg.InputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()
	return r.RunReader(ctx, file)
}

// RunReader processes JSONL transactions from in. Lines at or before the
// saved checkpoint are skipped without being counted.
func (r *Runner) RunReader(ctx context.Context, in io.Reader) (Stats, error) {
	if r.engine == nil {
		return Stats{}, fmt.Errorf("engine is nil")
	}
	if r.storage == nil {
		return Stats{}, fmt.Errorf("storage is nil")
	}
	if r.cfg.BatchSize <= 0 {
		return Stats{}, fmt.Errorf("batch size must be greater than zero")
	}

	var resume uint64
	if r.state != nil {
		last, ok, err := r.state.Load(ctx)
		if err != nil {
			return Stats{}, err
		}
		if ok {
			resume = last
			r.logger.Info("resume from checkpoint", zap.Uint64("last_processed", last))
		}
	}

	var stats Stats
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var line, pending uint64
	for scanner.Scan() {
		line++
		if line <= resume {
			continue
		}
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		stats.Total++
		r.process(ctx, line, raw, &stats)
		pending = line

		if len(r.summaries)+len(r.failures) >= r.cfg.BatchSize {
			if err := r.flush(ctx, pending); err != nil {
				return stats, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read input: %w", err)
	}
	if pending > 0 {
		if err := r.flush(ctx, pending); err != nil {
			return stats, err
		}
	}

	r.logger.Info("run complete",
		zap.String("run_id", r.cfg.RunID),
		zap.Int("total", stats.Total),
		zap.Int("humanized", stats.Humanized),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}

func (r *Runner) process(ctx context.Context, line uint64, raw []byte, stats *Stats) {
	var tx model.TransactionRecord
	if err := json.Unmarshal(raw, &tx); err != nil {
		stats.Failed++
		r.fail(model.DecodeError{Line: line, Kind: KindInput, Error: fmt.Sprintf("parse record: %v", err)})
		return
	}
	if tx.ChainID == 0 {
		tx.ChainID = r.cfg.ChainID
	}
	if err := tx.Validate(); err != nil {
		stats.Failed++
		r.fail(r.failure(line, tx, KindInput, err))
		return
	}

	info, meta := r.info, humanizer.ContractMeta{Address: tx.To}
	if r.enricher != nil {
		enriched, enrichedMeta, err := r.enricher.Enrich(ctx, tx, r.info)
		if err != nil {
			r.logger.Warn("enrich failed", zap.Uint64("line", line), zap.String("to", tx.To), zap.Error(err))
			stats.Failed++
			r.fail(r.failure(line, tx, KindEnrich, err))
			return
		}
		info, meta = enriched, enrichedMeta
	}

	res, err := r.engine.Humanize(tx, model.NetworkByChainID(tx.ChainID), info, meta, humanizer.Options{
		Extended: r.cfg.Extended,
		Mined:    r.cfg.Mined,
	})
	if err != nil {
		r.logger.Warn("humanize failed", zap.Uint64("line", line), zap.String("tx", tx.Hash), zap.Error(err))
		stats.Failed++
		r.fail(r.decodeFailure(line, tx, err))
		return
	}
	if res == nil {
		stats.Skipped++
		return
	}

	stats.Humanized++
	r.summaries = append(r.summaries, model.SummaryRecord{
		RunID:       r.cfg.RunID,
		Line:        line,
		ChainID:     tx.ChainID,
		TxHash:      tx.Hash,
		To:          model.NormalizeAddress(tx.To),
		Module:      res.Module,
		Method:      res.Method,
		Selector:    res.Selector.String(),
		Lines:       res.Lines,
		Actions:     res.Actions,
		HumanizedAt: r.now().UTC().Format(time.RFC3339Nano),
	})
}

func (r *Runner) failure(line uint64, tx model.TransactionRecord, kind string, err error) model.DecodeError {
	return model.DecodeError{
		RunID:   r.cfg.RunID,
		Line:    line,
		ChainID: tx.ChainID,
		TxHash:  tx.Hash,
		To:      tx.To,
		Kind:    kind,
		Error:   err.Error(),
	}
}

func (r *Runner) decodeFailure(line uint64, tx model.TransactionRecord, err error) model.DecodeError {
	var decodeErr *humanizer.DecodeError
	if !errors.As(err, &decodeErr) {
		return r.failure(line, tx, KindInternal, err)
	}
	rec := r.failure(line, tx, string(decodeErr.Kind), decodeErr.Err)
	rec.Module = decodeErr.Module
	rec.Method = decodeErr.Method
	if decodeErr.Module != "" {
		rec.Selector = decodeErr.Selector.String()
	}
	return rec
}

func (r *Runner) fail(rec model.DecodeError) {
	rec.RunID = r.cfg.RunID
	r.failures = append(r.failures, rec)
}

func (r *Runner) flush(ctx context.Context, lastLine uint64) error {
	if err := r.storage.PutSummaryBatch(ctx, r.summaries); err != nil {
		return fmt.Errorf("store summaries: %w", err)
	}
	if err := r.storage.PutErrorBatch(ctx, r.failures); err != nil {
		return fmt.Errorf("store errors: %w", err)
	}
	if r.state != nil {
		if err := r.state.Save(ctx, lastLine); err != nil {
			return err
		}
	}
	r.logger.Info("batch complete",
		zap.Int("summaries", len(r.summaries)),
		zap.Int("errors", len(r.failures)),
		zap.Uint64("last_line", lastLine),
	)
	r.summaries = r.summaries[:0]
	r.failures = r.failures[:0]
	return nil
}
