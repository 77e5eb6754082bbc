package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"txHumanizer/internal/config"
	"txHumanizer/internal/pipeline"
	"txHumanizer/internal/storage"
)

func newHumanizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "humanize",
		Short: "Humanize a JSONL file of transactions",
		RunE:  runHumanize,
	}
	addCommonFlags(cmd)
	addRPCFlags(cmd)
	cmd.Flags().String("in", "", "input transactions JSONL")
	cmd.Flags().String("out", "./data/summaries.jsonl", "output summaries JSONL")
	cmd.Flags().String("errors", "./data/humanize_errors.jsonl", "humanize errors JSONL")
	cmd.Flags().String("checkpoint", "./data/humanize_checkpoint.json", "checkpoint file path")
	cmd.Flags().Bool("checkpoint-enabled", true, "enable checkpointing")
	cmd.Flags().Int("batch-size", 500, "records per write batch")
	cmd.Flags().Bool("mined", true, "treat input as mined (no deadline notes)")
	cmd.Flags().Uint64("chain-id", 0, "chain id for records that carry none")
	return cmd
}

func runHumanize(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadHumanize(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := setup(ctx, cfg.Common, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	var sink storage.Storage = storage.NewJsonlStorage(cfg.Out, cfg.Errors)
	var state pipeline.StateStore = pipeline.NewFileStateStore(cfg.Checkpoint, cfg.CheckpointEnabled)
	if rt.store != nil {
		sink = storage.Multi{sink, rt.store}
		if cfg.CheckpointEnabled {
			state = pipeline.NewDBStateStore(rt.store, "humanize:"+filepath.Base(cfg.In))
		}
	}

	var enricher pipeline.Enricher
	if rt.enricher != nil {
		enricher = rt.enricher
	}

	runner := pipeline.NewRunner(pipeline.RunConfig{
		InputPath: cfg.In,
		BatchSize: cfg.BatchSize,
		Extended:  cfg.Extended,
		Mined:     cfg.Mined,
		ChainID:   cfg.ChainID,
	}, rt.engine, rt.info, enricher, sink, state, logger)

	logger.Info("humanize start",
		zap.String("run_id", runner.RunID()),
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.String("errors", cfg.Errors),
		zap.Int("batch_size", cfg.BatchSize),
		zap.Bool("extended", cfg.Extended),
		zap.Bool("enrich", enricher != nil),
		zap.Bool("postgres", rt.store != nil),
		zap.Bool("checkpoint_enabled", cfg.CheckpointEnabled),
	)

	_, err = runner.Run(ctx)
	return err
}
