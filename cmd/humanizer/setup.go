package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"txHumanizer/internal/chain"
	"txHumanizer/internal/config"
	"txHumanizer/internal/enrich"
	"txHumanizer/internal/humanizer"
	"txHumanizer/internal/humanizer/modules"
	"txHumanizer/internal/infoload"
	"txHumanizer/internal/model"
	"txHumanizer/internal/storage/postgres"
)

// runtime holds what a command needs to humanize transactions.
type runtime struct {
	info     *model.HumanizerInfo
	engine   *humanizer.Engine
	chain    *chain.Client
	enricher *enrich.Enricher
	store    *postgres.Store
}

func (r *runtime) Close() {
	if r.chain != nil {
		r.chain.Close()
	}
	if r.store != nil {
		r.store.Close()
	}
}

// setup loads info, merges the Postgres address book, builds the registry
// and connects RPC when configured. The caller must Close the result.
func setup(ctx context.Context, cfg config.Common, logger *zap.Logger) (*runtime, error) {
	rt := &runtime{}

	info, err := infoload.LoadFile(cfg.Info)
	if err != nil {
		return nil, err
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		rt.store = store
		if err := store.EnsureSchema(ctx); err != nil {
			rt.Close()
			return nil, err
		}
		if info, err = infoload.MergeNames(ctx, info, store); err != nil {
			rt.Close()
			return nil, err
		}
	}
	rt.info = info

	bindings, err := config.BindingAddresses(cfg.Bindings)
	if err != nil {
		rt.Close()
		return nil, err
	}
	reg, err := modules.NewDefaultRegistry(info, bindings)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("build registry: %w", err)
	}
	rt.engine = humanizer.NewEngine(reg)

	if cfg.RPCURL != "" {
		client, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("connect rpc: %w", err)
		}
		rt.chain = client
		rt.enricher = enrich.New(client, rt.engine, enrich.Config{
			MaxRetries:   cfg.MaxRetries,
			RetryBackoff: cfg.RetryBackoff,
			Concurrency:  cfg.Concurrency,
		}, logger)
	}

	logger.Debug("runtime ready",
		zap.Int("names", len(info.Names)),
		zap.Int("tokens", len(info.Tokens)),
		zap.Strings("modules", reg.Modules()),
		zap.Bool("rpc", rt.chain != nil),
		zap.Bool("postgres", rt.store != nil),
	)
	return rt, nil
}

// enrich returns info and contract metadata for tx, reading on chain when
// an RPC endpoint is configured.
func (r *runtime) enrich(ctx context.Context, tx model.TransactionRecord) (*model.HumanizerInfo, humanizer.ContractMeta, error) {
	if r.enricher == nil {
		return r.info, humanizer.ContractMeta{Address: tx.To}, nil
	}
	return r.enricher.Enrich(ctx, tx, r.info)
}
