package enrich

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"txHumanizer/internal/humanizer"
	"txHumanizer/internal/humanizer/modules"
	"txHumanizer/internal/model"
)

var (
	stakingAddr = common.HexToAddress("0x5555555555555555555555555555555555555555")
	lpAddr      = common.HexToAddress("0x6666666666666666666666666666666666666666")
	mkrAddr     = common.HexToAddress("0x9f8F72aA9304c8B593d555F12eF6589cC3A579A2")
)

// fakeCaller answers eth_call from a table keyed by contract and selector.
type fakeCaller struct {
	mu        sync.Mutex
	responses map[common.Address]map[string][]byte
	failures  map[common.Address]int
	calls     map[common.Address]int
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{
		responses: make(map[common.Address]map[string][]byte),
		failures:  make(map[common.Address]int),
		calls:     make(map[common.Address]int),
	}
}

func (f *fakeCaller) answer(to common.Address, parsed abi.ABI, method string, values ...interface{}) {
	out, err := parsed.Methods[method].Outputs.Pack(values...)
	if err != nil {
		panic(err)
	}
	if f.responses[to] == nil {
		f.responses[to] = make(map[string][]byte)
	}
	f.responses[to][hexutil.Encode(parsed.Methods[method].ID)] = out
}

func (f *fakeCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[*msg.To]++
	if f.failures[*msg.To] > 0 {
		f.failures[*msg.To]--
		return nil, errors.New("connection reset")
	}
	resp, ok := f.responses[*msg.To][hexutil.Encode(msg.Data[:4])]
	if !ok {
		return nil, errors.New("execution reverted")
	}
	return resp, nil
}

func (f *fakeCaller) callCount(addr common.Address) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[addr]
}

func stakingFixture(t *testing.T) (*fakeCaller, *humanizer.Engine) {
	t.Helper()
	caller := newFakeCaller()
	staking, err := modules.StakingRewards(nil)
	require.NoError(t, err)
	caller.answer(stakingAddr, staking.ABI, "stakingToken", lpAddr)

	stringABI, err := erc20ABIStringInstance()
	require.NoError(t, err)
	caller.answer(lpAddr, stringABI, "decimals", uint8(8))
	caller.answer(lpAddr, stringABI, "symbol", "UNI-V2")
	caller.answer(lpAddr, stringABI, "name", "Uniswap V2")

	reg, err := modules.NewDefaultRegistry(nil, nil)
	require.NoError(t, err)
	return caller, humanizer.NewEngine(reg, humanizer.WithClock(func() time.Time { return time.Unix(0, 0) }))
}

func stakeTx(t *testing.T, amount int64) model.TransactionRecord {
	t.Helper()
	parsed, err := modules.ModuleABI(nil, modules.StakingRewardsName)
	require.NoError(t, err)
	data, err := parsed.Pack("stake", big.NewInt(amount))
	require.NoError(t, err)
	return model.TransactionRecord{To: stakingAddr.Hex(), Data: hexutil.Encode(data), ChainID: 1}
}

func TestEnrichStakingTransaction(t *testing.T) {
	caller, engine := stakingFixture(t)
	enricher := New(caller, engine, Config{MaxRetries: 1, RetryBackoff: time.Millisecond}, nil)

	base := model.HumanizerInfo{}.Normalize()
	tx := stakeTx(t, 500000000)
	info, meta, err := enricher.Enrich(context.Background(), tx, base)
	require.NoError(t, err)

	assert.Equal(t, lpAddr.Hex(), meta.Get(modules.LPTokenKey))
	tok, ok := info.Token(lpAddr.Hex())
	require.True(t, ok)
	assert.Equal(t, uint8(8), tok.Decimals)
	assert.Equal(t, "UNI-V2", tok.Symbol)
	assert.Empty(t, base.Tokens)

	res, err := engine.Humanize(tx, model.NetworkByChainID(1), info, meta, humanizer.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Stake 5 UNI-V2"}, res.Lines)
}

func TestEnrichCachesResults(t *testing.T) {
	caller, engine := stakingFixture(t)
	enricher := New(caller, engine, Config{}, nil)

	for i := 0; i < 3; i++ {
		_, _, err := enricher.Enrich(context.Background(), stakeTx(t, 1), nil)
		require.NoError(t, err)
	}
	// stakingToken once, then the staking contract itself is probed once as
	// a token (decimals reverts) and cached as a miss.
	assert.Equal(t, 2, caller.callCount(stakingAddr))
	assert.Equal(t, 3, caller.callCount(lpAddr))
}

func TestEnrichRetriesTransientFailures(t *testing.T) {
	caller, engine := stakingFixture(t)
	caller.failures[stakingAddr] = 1
	enricher := New(caller, engine, Config{MaxRetries: 2, RetryBackoff: time.Millisecond}, nil)

	_, meta, err := enricher.Enrich(context.Background(), stakeTx(t, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, lpAddr.Hex(), meta.Get(modules.LPTokenKey))
}

func TestEnrichUnknownSelectorIsNoop(t *testing.T) {
	caller, engine := stakingFixture(t)
	enricher := New(caller, engine, Config{}, nil)
	base := model.HumanizerInfo{}.Normalize()

	info, meta, err := enricher.Enrich(context.Background(), model.TransactionRecord{To: stakingAddr.Hex(), Data: "0xdeadbeef"}, base)
	require.NoError(t, err)
	assert.Same(t, base, info)
	assert.Empty(t, meta.Data)
	assert.Zero(t, caller.callCount(stakingAddr))
}

func TestFetchTokenMetaBytes32Fallback(t *testing.T) {
	caller := newFakeCaller()
	stringABI, err := erc20ABIStringInstance()
	require.NoError(t, err)
	bytes32ABI, err := erc20ABIBytes32Instance()
	require.NoError(t, err)

	var symbol, name [32]byte
	copy(symbol[:], "MKR")
	copy(name[:], "Maker")
	caller.answer(mkrAddr, stringABI, "decimals", uint8(18))
	caller.answer(mkrAddr, bytes32ABI, "symbol", symbol)
	caller.answer(mkrAddr, bytes32ABI, "name", name)

	meta, err := FetchTokenMeta(context.Background(), caller, mkrAddr, nil)
	require.NoError(t, err)
	assert.Equal(t, "MKR", meta.Symbol)
	assert.Equal(t, "Maker", meta.Name)
	assert.Equal(t, uint8(18), meta.Decimals)
}
