package modules

import (
	"github.com/ethereum/go-ethereum/common"

	"txHumanizer/internal/humanizer"
	"txHumanizer/internal/model"
)

// WETHName is the wrapped native coin module.
const WETHName = "WETH"

// WrappedNativeAddresses are the wrapped native coin deployments the WETH
// module is bound to by default.
var WrappedNativeAddresses = []common.Address{
	common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), // Ethereum WETH
	common.HexToAddress("0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270"), // Polygon WMATIC
	common.HexToAddress("0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c"), // BNB Chain WBNB
	common.HexToAddress("0xB31f66AA3C1e785363F0875A1B74E27b85FD66c7"), // Avalanche WAVAX
	common.HexToAddress("0x82aF49447D8a07e3bd95BD0d56f35241523fBab1"), // Arbitrum WETH
	common.HexToAddress("0x4200000000000000000000000000000000000006"), // OP stack WETH
}

var wrappedNativeLabels = []string{
	"Ethereum WETH",
	"Polygon WMATIC",
	"BNB Chain WBNB",
	"Avalanche WAVAX",
	"Arbitrum WETH",
	"OP Stack WETH",
}

// WETH builds the wrapped native module. Its withdraw selector is shared
// with staking rewards contracts, so it is only registered at addresses.
func WETH(info *model.HumanizerInfo) (humanizer.ContractModule, error) {
	parsed, err := ModuleABI(info, WETHName)
	if err != nil {
		return humanizer.ContractModule{}, err
	}
	return humanizer.ContractModule{
		Name: WETHName,
		ABI:  parsed,
		Methods: []humanizer.MethodSpec{
			{Name: "deposit", Selector: "0xd0e30db0", Summary: wethDeposit},
			{Signature: "withdraw(uint256)", Selector: "0x2e1a7d4d", Summary: wethWithdraw},
		},
	}, nil
}

func wethDeposit(ctx *humanizer.DecodeContext) (*humanizer.Summary, error) {
	value, err := ctx.Tx.ValueBig()
	if err != nil {
		return nil, err
	}
	s := humanizer.NewSummary()
	s.Action("wrap").Text("Wrap").Token(ctx.NativeAmount(value))
	return s, nil
}

func wethWithdraw(ctx *humanizer.DecodeContext) (*humanizer.Summary, error) {
	amount, err := ctx.Inputs.BigIntAt(0)
	if err != nil {
		return nil, err
	}
	token := ctx.TokenAmount(ctx.Tx.To, amount, 0)
	if !token.Known {
		token.Known = true
		token.Decimals = ctx.Network.NativeDecimals
		token.Symbol = "W" + ctx.Network.NativeSymbol
	}
	s := humanizer.NewSummary()
	s.Action("unwrap").Text("Unwrap").Token(token)
	return s, nil
}
