package callplan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"

	"txHumanizer/internal/model"
)

// Step is one contract call of a plan.
type Step struct {
	Module string `json:"module" validate:"required"`
	Method string `json:"method" validate:"required"`
	To     Ref    `json:"to"`
	Value  *Ref   `json:"value,omitempty"`
	Args   []Ref  `json:"args"`
}

// Plan is an ordered list of calls plus the values they refer to.
type Plan struct {
	ChainID uint64                 `json:"chain_id" validate:"required"`
	From    string                 `json:"from" validate:"omitempty,eth_addr"`
	Values  map[string]interface{} `json:"values,omitempty"`
	Results map[string]interface{} `json:"results,omitempty"`
	Steps   []Step                 `json:"steps" validate:"required,min=1,dive"`
}

// MethodResolver finds the ABI method a step calls.
type MethodResolver interface {
	Method(module, method string) (abi.Method, error)
}

// Load reads and validates a plan file. Numbers are kept as json.Number so
// large integers survive.
func Load(path string) (*Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a plan.
func Parse(raw []byte) (*Plan, error) {
	var plan Plan
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	if err := validator.New().Struct(plan); err != nil {
		return nil, fmt.Errorf("validate plan: %w", err)
	}
	return &plan, nil
}

// Env returns the resolution environment declared in the plan.
func (p *Plan) Env() Env {
	return Env{Values: p.Values, Results: p.Results}
}

// Build turns every step into a transaction record.
func (p *Plan) Build(env Env, methods MethodResolver) ([]model.TransactionRecord, error) {
	out := make([]model.TransactionRecord, 0, len(p.Steps))
	for i, step := range p.Steps {
		tx, err := step.build(env, methods)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s.%s): %w", i, step.Module, step.Method, err)
		}
		tx.ChainID = p.ChainID
		tx.From = p.From
		out = append(out, tx)
	}
	return out, nil
}

func (s Step) build(env Env, methods MethodResolver) (model.TransactionRecord, error) {
	method, err := methods.Method(s.Module, s.Method)
	if err != nil {
		return model.TransactionRecord{}, err
	}
	if len(s.Args) != len(method.Inputs) {
		return model.TransactionRecord{}, fmt.Errorf("want %d args for %s, got %d", len(method.Inputs), method.Sig, len(s.Args))
	}

	args := make([]interface{}, len(s.Args))
	for i, ref := range s.Args {
		v, err := ref.Resolve(env)
		if err != nil {
			return model.TransactionRecord{}, fmt.Errorf("arg %d: %w", i, err)
		}
		args[i], err = coerce(method.Inputs[i].Type, v)
		if err != nil {
			return model.TransactionRecord{}, fmt.Errorf("arg %d (%s): %w", i, ref, err)
		}
	}
	packed, err := method.Inputs.Pack(args...)
	if err != nil {
		return model.TransactionRecord{}, fmt.Errorf("pack: %w", err)
	}

	to, err := resolveAddress(s.To, env)
	if err != nil {
		return model.TransactionRecord{}, fmt.Errorf("to: %w", err)
	}
	tx := model.TransactionRecord{
		To:   to,
		Data: hexutil.Encode(append(append([]byte{}, method.ID...), packed...)),
	}
	if s.Value != nil {
		v, err := s.Value.Resolve(env)
		if err != nil {
			return model.TransactionRecord{}, fmt.Errorf("value: %w", err)
		}
		n, err := toBig(v)
		if err != nil {
			return model.TransactionRecord{}, fmt.Errorf("value: %w", err)
		}
		tx.Value = n.String()
	}
	return tx, nil
}

func resolveAddress(ref Ref, env Env) (string, error) {
	v, err := ref.Resolve(env)
	if err != nil {
		return "", err
	}
	addr, err := coerce(abi.Type{T: abi.AddressTy}, v)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(addr), nil
}
