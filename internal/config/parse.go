package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ParseAddresses converts string addresses into common.Address.
func ParseAddresses(inputs []string) ([]common.Address, error) {
	addresses := make([]common.Address, 0, len(inputs))
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !common.IsHexAddress(input) {
			return nil, fmt.Errorf("invalid address: %s", input)
		}
		addresses = append(addresses, common.HexToAddress(input))
	}
	return addresses, nil
}

// ParseBindings splits "addr;addr" values keyed by module name.
func ParseBindings(raw map[string]string) (map[string][]string, error) {
	out := make(map[string][]string, len(raw))
	for module, value := range raw {
		module = strings.TrimSpace(module)
		if module == "" {
			return nil, fmt.Errorf("binding without module name")
		}
		for _, addr := range strings.Split(value, ";") {
			addr = strings.TrimSpace(addr)
			if addr == "" {
				continue
			}
			if !common.IsHexAddress(addr) {
				return nil, fmt.Errorf("binding %s: invalid address: %s", module, addr)
			}
			out[module] = append(out[module], addr)
		}
	}
	return out, nil
}

// BindingAddresses converts validated bindings into registry form.
func BindingAddresses(bindings map[string][]string) (map[string][]common.Address, error) {
	modules := make([]string, 0, len(bindings))
	for module := range bindings {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	out := make(map[string][]common.Address, len(bindings))
	for _, module := range modules {
		addrs, err := ParseAddresses(bindings[module])
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", module, err)
		}
		out[module] = addrs
	}
	return out, nil
}
