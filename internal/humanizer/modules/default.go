// Package modules holds the contract modules shipped with the humanizer.
package modules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"txHumanizer/internal/humanizer"
	"txHumanizer/internal/model"
)

type moduleBuilder func(info *model.HumanizerInfo) (humanizer.ContractModule, error)

// NewDefaultRegistry registers every shipped module. bindings scopes
// modules to additional addresses, keyed by module name.
func NewDefaultRegistry(info *model.HumanizerInfo, bindings map[string][]common.Address) (*humanizer.Registry, error) {
	reg := humanizer.NewRegistry()

	global := []moduleBuilder{StakingRewards, Permit2, ERC20}
	for _, build := range global {
		m, err := build(info)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("register %s: %w", m.Name, err)
		}
	}

	weth, err := WETH(info)
	if err != nil {
		return nil, err
	}
	if err := reg.RegisterAt(weth, WrappedNativeAddresses...); err != nil {
		return nil, fmt.Errorf("register %s: %w", weth.Name, err)
	}

	names := make([]string, 0, len(bindings))
	for module := range bindings {
		names = append(names, module)
	}
	sort.Strings(names)
	for _, module := range names {
		addrs := bindings[module]
		if len(addrs) == 0 {
			continue
		}
		if err := reg.Bind(canonicalModule(reg, module), addrs...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", module, err)
		}
	}
	return reg, nil
}

// canonicalModule maps a case-folded module name, as config files yield,
// to its registered spelling.
func canonicalModule(reg *humanizer.Registry, name string) string {
	if _, ok := reg.Module(name); ok {
		return name
	}
	for _, registered := range reg.Modules() {
		if strings.EqualFold(registered, name) {
			return registered
		}
	}
	return name
}

// KnownContracts labels the contracts shipped modules are bound to, keyed
// by checksummed address.
func KnownContracts() map[string]string {
	known := map[string]string{Permit2Address.Hex(): "Uniswap Permit2"}
	for i, addr := range WrappedNativeAddresses {
		if i < len(wrappedNativeLabels) {
			known[addr.Hex()] = wrappedNativeLabels[i]
		}
	}
	return known
}
