package modules

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"

	"txHumanizer/internal/humanizer"
	"txHumanizer/internal/model"
)

var (
	testNow      = time.Unix(1_700_000_000, 0)
	stakingAddr  = common.HexToAddress("0x5555555555555555555555555555555555555555")
	lpTokenAddr  = "0x6666666666666666666666666666666666666666"
	usdcAddr     = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	routerAddr   = common.HexToAddress("0x7777777777777777777777777777777777777777")
	senderAddr   = "0x8888888888888888888888888888888888888888"
	strangerAddr = common.HexToAddress("0x9999999999999999999999999999999999999999")
)

func testInfo() *model.HumanizerInfo {
	return model.HumanizerInfo{
		Names: map[string]string{
			routerAddr.Hex(): "Uniswap Router",
		},
		Tokens: map[string]model.TokenMeta{
			lpTokenAddr: {Symbol: "LP", Decimals: 8},
			usdcAddr:    {Symbol: "USDC", Decimals: 6, Name: "USD Coin"},
		},
	}.Normalize()
}

func testEngine(t *testing.T) *humanizer.Engine {
	t.Helper()
	reg, err := NewDefaultRegistry(testInfo(), nil)
	require.NoError(t, err)
	return humanizer.NewEngine(reg, humanizer.WithClock(func() time.Time { return testNow }))
}

func pack(t *testing.T, module, method string, args ...interface{}) string {
	t.Helper()
	parsed, err := ModuleABI(nil, module)
	require.NoError(t, err)
	data, err := parsed.Pack(method, args...)
	require.NoError(t, err)
	return hexutil.Encode(data)
}

func humanizeLines(t *testing.T, engine *humanizer.Engine, tx model.TransactionRecord, meta humanizer.ContractMeta, opts humanizer.Options) []string {
	t.Helper()
	if tx.ChainID == 0 {
		tx.ChainID = 1
	}
	res, err := engine.Humanize(tx, model.NetworkByChainID(tx.ChainID), testInfo(), meta, opts)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res.Lines
}

func bigString(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return v
}
