// Package enrich gathers on-chain facts a transaction summary needs before
// it is handed to the humanizer.
package enrich

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"txHumanizer/internal/humanizer"
	"txHumanizer/internal/model"
	"txHumanizer/internal/retry"
)

// Config bounds enrichment work.
type Config struct {
	MaxRetries   int
	RetryBackoff time.Duration
	Concurrency  int
}

// Enricher resolves token metadata and module metadata reads over RPC.
// It is safe for concurrent use.
type Enricher struct {
	caller Caller
	engine *humanizer.Engine
	tokens *TokenMetaCache
	reads  *ReadCache
	cfg    Config
	logger *zap.Logger
}

// New builds an enricher.
func New(caller Caller, engine *humanizer.Engine, cfg Config, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	return &Enricher{
		caller: caller,
		engine: engine,
		tokens: NewTokenMetaCache(),
		reads:  NewReadCache(),
		cfg:    cfg,
		logger: logger,
	}
}

// Enrich returns info extended with metadata of every token the transaction
// touches, and the contract metadata of its target. info is not modified.
// Lookup failures are logged and leave the summary to degrade.
func (e *Enricher) Enrich(ctx context.Context, tx model.TransactionRecord, info *model.HumanizerInfo) (*model.HumanizerInfo, humanizer.ContractMeta, error) {
	meta := humanizer.ContractMeta{Address: tx.To, Data: map[string]string{}}

	entry, inputs, err := e.engine.Decode(tx)
	if err != nil {
		return info, meta, nil
	}
	target := tx.ToAddress()

	candidates := []common.Address{target}
	if module, ok := e.engine.Registry().Module(entry.Module); ok {
		for _, read := range module.Reads {
			addr, err := e.readAddress(ctx, target, module, read)
			if err != nil {
				e.logger.Debug("metadata read failed",
					zap.String("contract", target.Hex()),
					zap.String("method", read.Method),
					zap.Error(err),
				)
				continue
			}
			meta.Data[read.Key] = addr.Hex()
			candidates = append(candidates, addr)
		}
	}
	candidates = append(candidates, inputs.Addresses()...)

	tokens, err := e.fetchTokens(ctx, info, candidates)
	if err != nil {
		return info, meta, err
	}
	return info.WithTokens(tokens), meta, nil
}

func (e *Enricher) readAddress(ctx context.Context, contract common.Address, module humanizer.ContractModule, read humanizer.MetaRead) (common.Address, error) {
	if cached, ok := e.reads.Get(contract, read.Key); ok {
		return common.HexToAddress(cached), nil
	}
	var addr common.Address
	err := retry.DoIf(ctx, e.cfg.MaxRetries, e.cfg.RetryBackoff, isRetryable, func(ctx context.Context) error {
		var err error
		addr, err = ReadAddress(ctx, e.caller, contract, module.ABI, read.Method)
		return err
	})
	if err != nil {
		return common.Address{}, err
	}
	e.reads.Set(contract, read.Key, addr.Hex())
	return addr, nil
}

func (e *Enricher) fetchTokens(ctx context.Context, info *model.HumanizerInfo, candidates []common.Address) ([]model.TokenMeta, error) {
	seen := make(map[common.Address]struct{}, len(candidates))
	var pending []common.Address
	for _, addr := range candidates {
		if addr == (common.Address{}) {
			continue
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		if _, ok := info.Token(addr.Hex()); ok {
			continue
		}
		pending = append(pending, addr)
	}

	results := make([]*model.TokenMeta, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)
	for i, addr := range pending {
		i, addr := i, addr
		g.Go(func() error {
			meta, ok := e.tokenMeta(gctx, addr)
			if ok {
				results[i] = &meta
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]model.TokenMeta, 0, len(results))
	for _, meta := range results {
		if meta != nil {
			out = append(out, *meta)
		}
	}
	return out, nil
}

func (e *Enricher) tokenMeta(ctx context.Context, addr common.Address) (model.TokenMeta, bool) {
	if meta, ok, cached := e.tokens.Get(addr); cached {
		return meta, ok
	}
	var meta model.TokenMeta
	err := retry.DoIf(ctx, e.cfg.MaxRetries, e.cfg.RetryBackoff, isRetryable, func(ctx context.Context) error {
		var err error
		meta, err = FetchTokenMeta(ctx, e.caller, addr, e.logger)
		return err
	})
	if err != nil {
		if ctx.Err() == nil && !isRetryable(err) {
			e.tokens.SetMiss(addr)
		}
		e.logger.Debug("token metadata unavailable", zap.String("address", addr.Hex()), zap.Error(err))
		return model.TokenMeta{}, false
	}
	e.tokens.Set(addr, meta)
	return meta, true
}
