package humanizer

import (
	"errors"
	"fmt"
	"time"

	"txHumanizer/internal/model"
)

// Result is the humanized form of one transaction.
type Result struct {
	Module    string         `json:"module"`
	Method    string         `json:"method"`
	Signature string         `json:"signature"`
	Selector  Selector       `json:"selector"`
	Lines     []string       `json:"lines,omitempty"`
	Actions   []model.Action `json:"actions,omitempty"`
}

// Engine dispatches transactions to registered modules. It holds no
// per-call state and is safe for concurrent use.
type Engine struct {
	registry *Registry
	now      func() time.Time
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithClock sets the clock used for deadline notes.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine builds an engine over a populated registry.
func NewEngine(registry *Registry, opts ...EngineOption) *Engine {
	e := &Engine{registry: registry, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the registry the engine dispatches on.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Match finds the registry entry a transaction dispatches to.
func (e *Engine) Match(tx model.TransactionRecord) (Entry, bool) {
	data, err := tx.CallData()
	if err != nil {
		return Entry{}, false
	}
	sel, ok := SelectorFromData(data)
	if !ok {
		return Entry{}, false
	}
	return e.registry.Lookup(sel, tx.ToAddress())
}

// Decode unpacks the arguments of a transaction without summarizing it.
// It returns ErrUnknownSelector when no module claims the call.
func (e *Engine) Decode(tx model.TransactionRecord) (Entry, Inputs, error) {
	data, err := tx.CallData()
	if err != nil {
		return Entry{}, Inputs{}, &DecodeError{Kind: KindCallData, Err: err}
	}
	sel, ok := SelectorFromData(data)
	if !ok {
		return Entry{}, Inputs{}, ErrUnknownSelector
	}
	entry, ok := e.registry.Lookup(sel, tx.ToAddress())
	if !ok {
		return Entry{}, Inputs{}, ErrUnknownSelector
	}
	values, err := entry.Method.Inputs.Unpack(data[4:])
	if err != nil {
		return entry, Inputs{}, &DecodeError{
			Module:   entry.Module,
			Method:   entry.Method.RawName,
			Selector: sel,
			Kind:     KindDecode,
			Err:      err,
		}
	}
	return entry, newInputs(entry.Method.Inputs, values), nil
}

// Humanize summarizes a transaction. It returns (nil, nil) when no module
// claims the selector or the data is too short to carry one, and a
// *DecodeError when the call cannot be decoded or summarized.
func (e *Engine) Humanize(tx model.TransactionRecord, network model.Network, info *model.HumanizerInfo, meta ContractMeta, opts Options) (*Result, error) {
	entry, inputs, err := e.Decode(tx)
	if errors.Is(err, ErrUnknownSelector) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ctx := &DecodeContext{
		Network:  network,
		Tx:       tx,
		Info:     info,
		Contract: meta,
		Module:   entry.Module,
		Method:   entry.Method,
		Inputs:   inputs,
		Options:  opts,
		Now:      e.now(),
	}
	summary, err := runSummary(entry.Spec.Summary, ctx)
	if err != nil {
		return nil, &DecodeError{
			Module:   entry.Module,
			Method:   entry.Method.RawName,
			Selector: entry.Selector,
			Kind:     KindSummary,
			Err:      err,
		}
	}

	res := &Result{
		Module:    entry.Module,
		Method:    entry.Method.RawName,
		Signature: entry.Method.Sig,
		Selector:  entry.Selector,
	}
	if opts.Extended {
		res.Actions = summary.Actions()
	} else {
		res.Lines = summary.Lines()
	}
	return res, nil
}

func runSummary(fn SummaryFunc, ctx *DecodeContext) (summary *Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			summary, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	summary, err = fn(ctx)
	if err == nil && summary == nil {
		summary = NewSummary()
	}
	return summary, err
}
