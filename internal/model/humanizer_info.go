package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HumanizerInfo is the read-only lookup data handed to decoders: extra ABIs
// keyed by module name, address names and token metadata keyed by address.
type HumanizerInfo struct {
	ABIs   map[string]json.RawMessage `json:"abis,omitempty"`
	Names  map[string]string          `json:"names,omitempty"`
	Tokens map[string]TokenMeta       `json:"tokens,omitempty" validate:"dive"`
}

// NormalizeAddress lower-cases and trims an address used as a lookup key.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Normalize returns a copy with lower-cased address keys and token
// addresses filled from their keys.
func (info HumanizerInfo) Normalize() *HumanizerInfo {
	out := &HumanizerInfo{
		ABIs:   make(map[string]json.RawMessage, len(info.ABIs)),
		Names:  make(map[string]string, len(info.Names)),
		Tokens: make(map[string]TokenMeta, len(info.Tokens)),
	}
	for name, raw := range info.ABIs {
		out.ABIs[name] = raw
	}
	for addr, name := range info.Names {
		out.Names[NormalizeAddress(addr)] = name
	}
	for addr, meta := range info.Tokens {
		key := NormalizeAddress(addr)
		if meta.Address == "" {
			meta.Address = key
		}
		out.Tokens[key] = meta
	}
	return out
}

// Validate checks token metadata and address keys.
func (info *HumanizerInfo) Validate() error {
	if info == nil {
		return nil
	}
	if err := validate.Struct(info); err != nil {
		return err
	}
	for addr := range info.Names {
		if err := validate.Var(addr, "eth_addr"); err != nil {
			return fmt.Errorf("name key %q: %w", addr, err)
		}
	}
	for addr := range info.Tokens {
		if err := validate.Var(addr, "eth_addr"); err != nil {
			return fmt.Errorf("token key %q: %w", addr, err)
		}
	}
	return nil
}

// WithNames returns a copy with names overlaid. Entries already present win.
func (info *HumanizerInfo) WithNames(names map[string]string) *HumanizerInfo {
	out := info.clone()
	for addr, name := range names {
		key := NormalizeAddress(addr)
		if _, ok := out.Names[key]; ok || name == "" {
			continue
		}
		out.Names[key] = name
	}
	return out
}

// WithTokens returns a copy with token metadata added. Entries already
// present win.
func (info *HumanizerInfo) WithTokens(tokens []TokenMeta) *HumanizerInfo {
	if len(tokens) == 0 && info != nil {
		return info
	}
	out := info.clone()
	for _, meta := range tokens {
		key := NormalizeAddress(meta.Address)
		if key == "" {
			continue
		}
		if _, ok := out.Tokens[key]; ok {
			continue
		}
		out.Tokens[key] = meta
	}
	return out
}

// Name looks up an address name.
func (info *HumanizerInfo) Name(address string) (string, bool) {
	if info == nil {
		return "", false
	}
	name, ok := info.Names[NormalizeAddress(address)]
	return name, ok && name != ""
}

// Token looks up token metadata for an address.
func (info *HumanizerInfo) Token(address string) (TokenMeta, bool) {
	if info == nil {
		return TokenMeta{}, false
	}
	meta, ok := info.Tokens[NormalizeAddress(address)]
	return meta, ok
}

// ABI returns an override ABI for a module.
func (info *HumanizerInfo) ABI(module string) (json.RawMessage, bool) {
	if info == nil {
		return nil, false
	}
	raw, ok := info.ABIs[module]
	return raw, ok && len(raw) > 0
}

func (info *HumanizerInfo) clone() *HumanizerInfo {
	if info == nil {
		return HumanizerInfo{}.Normalize()
	}
	return info.Normalize()
}
