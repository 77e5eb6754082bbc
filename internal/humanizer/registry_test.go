package humanizer

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterResolvesSelectors(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(toyModule(t, "toy")))

	entry, ok := reg.Lookup(SignatureSelector("ping(uint256)"), common.Address{})
	require.True(t, ok)
	assert.Equal(t, "toy", entry.Module)
	assert.Equal(t, "ping(uint256)", entry.Method.Sig)
}

func TestRegisterRejectsGlobalConflict(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(toyModule(t, "first")))

	err := reg.Register(toyModule(t, "second"))
	var conflict *SelectorConflictError
	require.True(t, errors.As(err, &conflict), "got %v", err)
	assert.Equal(t, GlobalScope, conflict.Scope)
	assert.Equal(t, "first", conflict.Existing)
	assert.Equal(t, "second", conflict.Incoming)

	// The failed registration left nothing behind.
	assert.Equal(t, []string{"first"}, reg.Modules())
	entry, _ := reg.Lookup(SignatureSelector("ping(uint256)"), common.Address{})
	assert.Equal(t, "first", entry.Module)
}

func TestScopedEntryWinsOverGlobal(t *testing.T) {
	scopedAddr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	otherAddr := common.HexToAddress("0x2222222222222222222222222222222222222222")

	reg := NewRegistry()
	require.NoError(t, reg.Register(toyModule(t, "global")))
	require.NoError(t, reg.RegisterAt(toyModule(t, "scoped"), scopedAddr))

	sel := SignatureSelector("ping(uint256)")
	entry, ok := reg.Lookup(sel, scopedAddr)
	require.True(t, ok)
	assert.Equal(t, "scoped", entry.Module)

	entry, ok = reg.Lookup(sel, otherAddr)
	require.True(t, ok)
	assert.Equal(t, "global", entry.Module)
}

func TestScopedConflictOnSameAddress(t *testing.T) {
	addr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	reg := NewRegistry()
	require.NoError(t, reg.RegisterAt(toyModule(t, "a"), addr))

	err := reg.RegisterAt(toyModule(t, "b"), addr)
	var conflict *SelectorConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, addr.Hex(), conflict.Scope)
}

func TestBindAddsAddresses(t *testing.T) {
	addr := common.HexToAddress("0x3333333333333333333333333333333333333333")
	reg := NewRegistry()
	require.NoError(t, reg.Register(toyModule(t, "toy")))
	require.NoError(t, reg.Bind("toy", addr))
	require.Error(t, reg.Bind("missing", addr))

	entry, ok := reg.Lookup(SignatureSelector("ping(uint256)"), addr)
	require.True(t, ok)
	assert.Equal(t, "toy", entry.Module)
}

func TestRegisterRejectsBadModules(t *testing.T) {
	cases := []struct {
		name   string
		module ContractModule
	}{
		{name: "empty name", module: ContractModule{ABI: toyABI(t)}},
		{name: "unknown method", module: ContractModule{Name: "m", ABI: toyABI(t), Methods: []MethodSpec{{Name: "nope", Summary: textSummary("x", "x")}}}},
		{name: "overloaded by name", module: ContractModule{Name: "m", ABI: toyABI(t), Methods: []MethodSpec{{Name: "poke", Summary: textSummary("x", "x")}}}},
		{name: "nil summary", module: ContractModule{Name: "m", ABI: toyABI(t), Methods: []MethodSpec{{Name: "ping"}}}},
		{name: "selector mismatch", module: ContractModule{Name: "m", ABI: toyABI(t), Methods: []MethodSpec{{Name: "ping", Selector: "0xdeadbeef", Summary: textSummary("x", "x")}}}},
		{name: "duplicate method", module: ContractModule{Name: "m", ABI: toyABI(t), Methods: []MethodSpec{
			{Name: "ping", Summary: textSummary("x", "x")},
			{Signature: "ping(uint256)", Summary: textSummary("x", "x")},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, NewRegistry().Register(tc.module))
		})
	}

	reg := NewRegistry()
	require.NoError(t, reg.Register(toyModule(t, "dup")))
	var modErr *ModuleError
	assert.ErrorAs(t, reg.RegisterAt(toyModule(t, "dup"), common.Address{1}), &modErr)
}

func TestOverloadsBySignature(t *testing.T) {
	reg := NewRegistry()
	module := ContractModule{
		Name: "toy",
		ABI:  toyABI(t),
		Methods: []MethodSpec{
			{Signature: "poke(address)", Summary: textSummary("poke", "poke one")},
			{Signature: "poke(address, uint256)", Summary: textSummary("poke", "poke two")},
		},
	}
	require.NoError(t, reg.Register(module))

	want := []SelectorEntry{
		{Scope: GlobalScope, Selector: SignatureSelector("poke(address)").String(), Module: "toy", Method: "poke", Signature: "poke(address)"},
		{Scope: GlobalScope, Selector: SignatureSelector("poke(address,uint256)").String(), Module: "toy", Method: "poke", Signature: "poke(address,uint256)"},
	}
	got := reg.Snapshot()
	sortEntries := cmp.Transformer("bySig", func(in []SelectorEntry) map[string]SelectorEntry {
		out := make(map[string]SelectorEntry, len(in))
		for _, e := range in {
			out[e.Signature] = e
		}
		return out
	})
	if diff := cmp.Diff(want, got, sortEntries); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}

	_, err := reg.Method("toy", "poke")
	assert.Error(t, err)
	m, err := reg.Method("toy", "poke(address,uint256)")
	require.NoError(t, err)
	assert.Len(t, m.Inputs, 2)
}
