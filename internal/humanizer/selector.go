package humanizer

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Selector is the 4-byte function identifier at the head of call data.
type Selector [4]byte

// String returns the 0x-prefixed lower-case hex form.
func (s Selector) String() string {
	return hexutil.Encode(s[:])
}

// MarshalText implements encoding.TextMarshaler.
func (s Selector) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Selector) UnmarshalText(text []byte) error {
	parsed, err := ParseSelector(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSelector parses a 0x-prefixed 4-byte hex string.
func ParseSelector(text string) (Selector, error) {
	var s Selector
	raw, err := hexutil.Decode(strings.TrimSpace(text))
	if err != nil {
		return s, fmt.Errorf("selector %q: %w", text, err)
	}
	if len(raw) != len(s) {
		return s, fmt.Errorf("selector %q: want 4 bytes, got %d", text, len(raw))
	}
	copy(s[:], raw)
	return s, nil
}

// SelectorFromData returns the selector of call data, false when the data
// is shorter than four bytes.
func SelectorFromData(data []byte) (Selector, bool) {
	var s Selector
	if len(data) < len(s) {
		return s, false
	}
	copy(s[:], data[:4])
	return s, true
}

// SignatureSelector hashes a canonical signature such as "stake(uint256)".
func SignatureSelector(signature string) Selector {
	var s Selector
	copy(s[:], crypto.Keccak256([]byte(normalizeSignature(signature)))[:4])
	return s
}

func normalizeSignature(signature string) string {
	return strings.Join(strings.Fields(signature), "")
}
