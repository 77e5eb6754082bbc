package enrich

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"txHumanizer/internal/model"
)

// Caller performs eth_call. *chain.Client satisfies it.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// callMethod packs, calls and unpacks a view method.
func callMethod(ctx context.Context, caller Caller, to common.Address, parsed abi.ABI, method string) ([]interface{}, error) {
	data, err := parsed.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &to, Data: data}
	resp, err := caller.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, errNotContract{err})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("unpack %s: %w", method, errNotContract{errors.New("no return values")})
	}
	return values, nil
}

// errNotContract marks answers that cannot improve on retry.
type errNotContract struct{ err error }

func (e errNotContract) Error() string { return e.err.Error() }
func (e errNotContract) Unwrap() error { return e.err }

// isRetryable is false for reverts and undecodable answers.
func isRetryable(err error) bool {
	var notContract errNotContract
	if errors.As(err, &notContract) {
		return false
	}
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		return false
	}
	return !strings.Contains(err.Error(), "execution reverted")
}

// FetchTokenMeta loads token metadata via ERC20 calls.
func FetchTokenMeta(ctx context.Context, caller Caller, token common.Address, logger *zap.Logger) (model.TokenMeta, error) {
	meta := model.TokenMeta{Address: token.Hex()}
	if caller == nil {
		return meta, fmt.Errorf("chain client is nil")
	}

	stringABI, err := erc20ABIStringInstance()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 string abi: %w", err)
	}
	bytes32ABI, err := erc20ABIBytes32Instance()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 bytes32 abi: %w", err)
	}

	values, err := callMethod(ctx, caller, token, stringABI, "decimals")
	if err != nil {
		return meta, err
	}
	decimals, err := asUint8(values[0])
	if err != nil {
		return meta, errNotContract{err}
	}
	meta.Decimals = decimals

	meta.Symbol = readText(ctx, caller, token, stringABI, bytes32ABI, "symbol", logger)
	meta.Name = readText(ctx, caller, token, stringABI, bytes32ABI, "name", logger)
	return meta, nil
}

func readText(ctx context.Context, caller Caller, token common.Address, stringABI, bytes32ABI abi.ABI, method string, logger *zap.Logger) string {
	if values, err := callMethod(ctx, caller, token, stringABI, method); err == nil {
		if text, ok := values[0].(string); ok {
			return text
		}
	}
	values, err := callMethod(ctx, caller, token, bytes32ABI, method)
	if err == nil {
		if text, ok := bytes32ToString(values[0]); ok {
			return text
		}
	}
	if logger != nil {
		logger.Debug("token text call failed", zap.String("token", token.Hex()), zap.String("method", method), zap.Error(err))
	}
	return ""
}

// ReadAddress calls a zero-argument view returning an address.
func ReadAddress(ctx context.Context, caller Caller, contract common.Address, parsed abi.ABI, method string) (common.Address, error) {
	values, err := callMethod(ctx, caller, contract, parsed, method)
	if err != nil {
		return common.Address{}, err
	}
	addr, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, errNotContract{fmt.Errorf("%s returned %T, want address", method, values[0])}
	}
	return addr, nil
}

func bytes32ToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case [32]byte:
		return string(bytes.TrimRight(v[:], "\x00")), true
	case []byte:
		return string(bytes.TrimRight(v, "\x00")), true
	default:
		return "", false
	}
}

func asUint8(value interface{}) (uint8, error) {
	switch v := value.(type) {
	case uint8:
		return v, nil
	case *big.Int:
		if !v.IsUint64() || v.Uint64() > 255 {
			return 0, fmt.Errorf("decimals out of range: %s", v)
		}
		return uint8(v.Uint64()), nil
	default:
		return 0, fmt.Errorf("unsupported uint8 type %T", value)
	}
}
