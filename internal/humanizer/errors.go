package humanizer

import (
	"errors"
	"fmt"
)

// ErrUnknownSelector marks a transaction no registered module claims.
var ErrUnknownSelector = errors.New("unknown selector")

// DecodeKind tells which stage of humanizing failed.
type DecodeKind string

const (
	KindCallData DecodeKind = "calldata"
	KindDecode   DecodeKind = "decode"
	KindSummary  DecodeKind = "summary"
)

// DecodeError is a contained per-transaction failure.
type DecodeError struct {
	Module   string
	Method   string
	Selector Selector
	Kind     DecodeKind
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Module == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s.%s (%s): %v", e.Kind, e.Module, e.Method, e.Selector, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ModuleError reports an invalid module definition.
type ModuleError struct {
	Module string
	Method string
	Err    error
}

func (e *ModuleError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("module %s: %v", e.Module, e.Err)
	}
	return fmt.Sprintf("module %s method %s: %v", e.Module, e.Method, e.Err)
}

func (e *ModuleError) Unwrap() error {
	return e.Err
}

// SelectorConflictError reports two modules claiming one selector in the
// same scope.
type SelectorConflictError struct {
	Selector Selector
	Scope    string
	Existing string
	Incoming string
}

func (e *SelectorConflictError) Error() string {
	return fmt.Sprintf("selector %s in scope %s already claimed by %s, cannot register %s",
		e.Selector, e.Scope, e.Existing, e.Incoming)
}
