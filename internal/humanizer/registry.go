package humanizer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// GlobalScope names the unscoped selector table in snapshots and errors.
const GlobalScope = "*"

// Registry maps selectors to module entries. Address-scoped entries win over
// global ones. Registration happens at startup; once it is done the
// registry is read-only and safe for concurrent lookups.
type Registry struct {
	modules map[string]*registered
	global  map[Selector]Entry
	scoped  map[common.Address]map[Selector]Entry
}

type registered struct {
	module  ContractModule
	entries []Entry
}

// SelectorEntry is one row of a registry snapshot.
type SelectorEntry struct {
	Scope     string `json:"scope"`
	Selector  string `json:"selector"`
	Module    string `json:"module"`
	Method    string `json:"method"`
	Signature string `json:"signature"`
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]*registered),
		global:  make(map[Selector]Entry),
		scoped:  make(map[common.Address]map[Selector]Entry),
	}
}

// Register adds a module to the global table.
func (r *Registry) Register(m ContractModule) error {
	reg, err := r.prepare(m)
	if err != nil {
		return err
	}
	for _, e := range reg.entries {
		if existing, ok := r.global[e.Selector]; ok {
			return &SelectorConflictError{Selector: e.Selector, Scope: GlobalScope, Existing: existing.Module, Incoming: m.Name}
		}
	}
	for _, e := range reg.entries {
		r.global[e.Selector] = e
	}
	r.modules[m.Name] = reg
	return nil
}

// RegisterAt adds a module that only applies to the given addresses.
func (r *Registry) RegisterAt(m ContractModule, addresses ...common.Address) error {
	if len(addresses) == 0 {
		return &ModuleError{Module: m.Name, Err: errors.New("no addresses to bind")}
	}
	reg, err := r.prepare(m)
	if err != nil {
		return err
	}
	if err := r.checkScoped(reg, addresses); err != nil {
		return err
	}
	r.modules[m.Name] = reg
	r.commitScoped(reg, addresses)
	return nil
}

// Bind scopes an already registered module to more addresses.
func (r *Registry) Bind(module string, addresses ...common.Address) error {
	reg, ok := r.modules[module]
	if !ok {
		return &ModuleError{Module: module, Err: errors.New("module not registered")}
	}
	if err := r.checkScoped(reg, addresses); err != nil {
		return err
	}
	r.commitScoped(reg, addresses)
	return nil
}

// Lookup finds the entry for a selector called on address to.
func (r *Registry) Lookup(sel Selector, to common.Address) (Entry, bool) {
	if table, ok := r.scoped[to]; ok {
		if e, ok := table[sel]; ok {
			return e, true
		}
	}
	e, ok := r.global[sel]
	return e, ok
}

// Module returns a registered module by name.
func (r *Registry) Module(name string) (ContractModule, bool) {
	reg, ok := r.modules[name]
	if !ok {
		return ContractModule{}, false
	}
	return reg.module, true
}

// Method resolves a method of a registered module by name or signature.
func (r *Registry) Method(module, method string) (abi.Method, error) {
	m, ok := r.Module(module)
	if !ok {
		return abi.Method{}, fmt.Errorf("module %s not registered", module)
	}
	return m.FindMethod(method, "")
}

// Modules lists registered module names in order.
func (r *Registry) Modules() []string {
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns every selector binding sorted by scope then selector.
func (r *Registry) Snapshot() []SelectorEntry {
	out := make([]SelectorEntry, 0, len(r.global))
	for _, e := range r.global {
		out = append(out, snapshotEntry(GlobalScope, e))
	}
	for addr, table := range r.scoped {
		for _, e := range table {
			out = append(out, snapshotEntry(addr.Hex(), e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Scope != out[j].Scope {
			return out[i].Scope < out[j].Scope
		}
		return out[i].Selector < out[j].Selector
	})
	return out
}

func (r *Registry) prepare(m ContractModule) (*registered, error) {
	if _, ok := r.modules[m.Name]; ok {
		return nil, &ModuleError{Module: m.Name, Err: errors.New("module already registered")}
	}
	entries, err := m.resolve()
	if err != nil {
		return nil, err
	}
	return &registered{module: m, entries: entries}, nil
}

func (r *Registry) checkScoped(reg *registered, addresses []common.Address) error {
	for _, addr := range addresses {
		table := r.scoped[addr]
		for _, e := range reg.entries {
			if existing, ok := table[e.Selector]; ok && existing.Module != e.Module {
				return &SelectorConflictError{Selector: e.Selector, Scope: addr.Hex(), Existing: existing.Module, Incoming: e.Module}
			}
		}
	}
	return nil
}

func (r *Registry) commitScoped(reg *registered, addresses []common.Address) {
	for _, addr := range addresses {
		table, ok := r.scoped[addr]
		if !ok {
			table = make(map[Selector]Entry, len(reg.entries))
			r.scoped[addr] = table
		}
		for _, e := range reg.entries {
			table[e.Selector] = e
		}
	}
}

func snapshotEntry(scope string, e Entry) SelectorEntry {
	return SelectorEntry{
		Scope:     scope,
		Selector:  e.Selector.String(),
		Module:    e.Module,
		Method:    e.Method.RawName,
		Signature: e.Method.Sig,
	}
}
