package model

// TokenMeta captures ERC20 metadata.
type TokenMeta struct {
	Address  string `json:"address" validate:"omitempty,eth_addr"`
	Decimals uint8  `json:"decimals" validate:"lte=77"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
}

// Label returns the best short display name for the token.
func (t TokenMeta) Label() string {
	if t.Symbol != "" {
		return t.Symbol
	}
	return t.Name
}
