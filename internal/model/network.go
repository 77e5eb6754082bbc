package model

import "strconv"

// Network describes the chain a transaction targets.
type Network struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ChainID        uint64 `json:"chain_id"`
	NativeSymbol   string `json:"native_symbol"`
	NativeDecimals uint8  `json:"native_decimals"`
}

var knownNetworks = []Network{
	{ID: "ethereum", Name: "Ethereum", ChainID: 1, NativeSymbol: "ETH", NativeDecimals: 18},
	{ID: "optimism", Name: "Optimism", ChainID: 10, NativeSymbol: "ETH", NativeDecimals: 18},
	{ID: "binance-smart-chain", Name: "BNB Chain", ChainID: 56, NativeSymbol: "BNB", NativeDecimals: 18},
	{ID: "polygon", Name: "Polygon", ChainID: 137, NativeSymbol: "MATIC", NativeDecimals: 18},
	{ID: "fantom", Name: "Fantom", ChainID: 250, NativeSymbol: "FTM", NativeDecimals: 18},
	{ID: "base", Name: "Base", ChainID: 8453, NativeSymbol: "ETH", NativeDecimals: 18},
	{ID: "arbitrum", Name: "Arbitrum", ChainID: 42161, NativeSymbol: "ETH", NativeDecimals: 18},
	{ID: "avalanche", Name: "Avalanche", ChainID: 43114, NativeSymbol: "AVAX", NativeDecimals: 18},
}

// NetworkByChainID returns the known network for id, or a generic network
// with an 18-decimal native coin.
func NetworkByChainID(id uint64) Network {
	for _, n := range knownNetworks {
		if n.ChainID == id {
			return n
		}
	}
	idText := strconv.FormatUint(id, 10)
	return Network{
		ID:             idText,
		Name:           "chain " + idText,
		ChainID:        id,
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
	}
}

// KnownNetworks returns a copy of the built-in network table.
func KnownNetworks() []Network {
	out := make([]Network, len(knownNetworks))
	copy(out, knownNetworks)
	return out
}
