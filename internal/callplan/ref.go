// Package callplan builds transactions from step descriptions whose
// arguments may refer to named values or to results of earlier calls.
package callplan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownValue    = errors.New("unknown value")
	ErrPathNotFound    = errors.New("path not found")
	ErrNotTraversable  = errors.New("value is not traversable")
	ErrIndexOutOfRange = errors.New("index out of range")
)

const (
	resultPrefix = "$res"
	valuePrefix  = "$"
)

// RefKind says where a Ref takes its value from.
type RefKind int

const (
	RefLiteral RefKind = iota
	RefValue
	RefResult
)

// Ref is a step argument: a literal, a named value ("$amount") or a path
// into earlier call results ("$res.pool.token").
type Ref struct {
	Kind    RefKind
	Literal interface{}
	Name    string
	Path    []string
}

// Env holds what refs resolve against.
type Env struct {
	Values  map[string]interface{}
	Results map[string]interface{}
}

// Literal wraps a constant.
func Literal(v interface{}) Ref {
	return Ref{Kind: RefLiteral, Literal: v}
}

// ParseRef classifies a decoded JSON value.
func ParseRef(v interface{}) (Ref, error) {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, valuePrefix) {
		return Literal(v), nil
	}
	if s == resultPrefix || strings.HasPrefix(s, resultPrefix+".") {
		var path []string
		if rest := strings.TrimPrefix(s, resultPrefix); rest != "" {
			path = strings.Split(rest[1:], ".")
		}
		for _, key := range path {
			if key == "" {
				return Ref{}, fmt.Errorf("empty path segment in %q", s)
			}
		}
		return Ref{Kind: RefResult, Path: path}, nil
	}
	name := strings.TrimPrefix(s, valuePrefix)
	if name == "" {
		return Ref{}, fmt.Errorf("empty value name in %q", s)
	}
	return Ref{Kind: RefValue, Name: name}, nil
}

// UnmarshalJSON parses a ref once at load time.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	parsed, err := ParseRef(v)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalJSON writes the ref back in its placeholder form.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.placeholder())
}

func (r Ref) placeholder() interface{} {
	switch r.Kind {
	case RefValue:
		return valuePrefix + r.Name
	case RefResult:
		if len(r.Path) == 0 {
			return resultPrefix
		}
		return resultPrefix + "." + strings.Join(r.Path, ".")
	default:
		return r.Literal
	}
}

// String returns the placeholder or literal text.
func (r Ref) String() string {
	return fmt.Sprint(r.placeholder())
}

// Resolve returns the value the ref points at.
func (r Ref) Resolve(env Env) (interface{}, error) {
	switch r.Kind {
	case RefLiteral:
		return r.Literal, nil
	case RefValue:
		v, ok := env.Values[r.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownValue, r.Name)
		}
		return v, nil
	case RefResult:
		return walk(env.Results, r.Path)
	default:
		return nil, fmt.Errorf("unknown ref kind %d", r.Kind)
	}
}

func walk(root map[string]interface{}, path []string) (interface{}, error) {
	var cur interface{} = root
	for i, key := range path {
		at := resultPrefix + "." + strings.Join(path[:i+1], ".")
		switch node := cur.(type) {
		case map[string]interface{}:
			next, ok := node[key]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrPathNotFound, at)
			}
			cur = next
		case []interface{}:
			idx, err := strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf("%w: %s is a list, %q is not an index", ErrNotTraversable, at, key)
			}
			if idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("%w: %s (len %d)", ErrIndexOutOfRange, at, len(node))
			}
			cur = node[idx]
		default:
			return nil, fmt.Errorf("%w: %s (%T)", ErrNotTraversable, at, cur)
		}
	}
	return cur, nil
}
