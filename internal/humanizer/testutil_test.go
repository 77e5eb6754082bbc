package humanizer

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const toyABIJSON = `[
  {"inputs":[{"name":"amount","type":"uint256"}],"name":"ping","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"name":"who","type":"address"}],"name":"poke","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"name":"who","type":"address"},{"name":"amount","type":"uint256"}],"name":"poke","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[],"name":"boom","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

func toyABI(t *testing.T) abi.ABI {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(toyABIJSON))
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	return parsed
}

func textSummary(kind, text string) SummaryFunc {
	return func(ctx *DecodeContext) (*Summary, error) {
		s := NewSummary()
		s.Action(kind).Text(text)
		return s, nil
	}
}

func toyModule(t *testing.T, name string) ContractModule {
	return ContractModule{
		Name: name,
		ABI:  toyABI(t),
		Methods: []MethodSpec{
			{Name: "ping", Summary: textSummary("ping", name+" ping")},
		},
	}
}
