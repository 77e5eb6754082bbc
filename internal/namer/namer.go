// Package namer turns addresses into display labels.
package namer

import (
	"strings"

	"txHumanizer/internal/model"
)

// ResolveName returns the configured name for address, else the symbol of a
// known token at that address, else the address exactly as given.
func ResolveName(info *model.HumanizerInfo, address string) string {
	if strings.TrimSpace(address) == "" {
		return address
	}
	if name, ok := info.Name(address); ok {
		return name
	}
	if meta, ok := info.Token(address); ok {
		if label := meta.Label(); label != "" {
			return label
		}
	}
	return address
}

// Token returns metadata for the token at address.
func Token(info *model.HumanizerInfo, address string) (model.TokenMeta, bool) {
	if strings.TrimSpace(address) == "" {
		return model.TokenMeta{}, false
	}
	return info.Token(address)
}

// Address builds an address reference with its resolved name.
func Address(info *model.HumanizerInfo, address string) model.AddressRef {
	return model.AddressRef{Address: address, Name: ResolveName(info, address)}
}
