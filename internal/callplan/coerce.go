package callplan

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cast"
)

// coerce converts a resolved JSON-ish value into the Go type abi.Pack
// expects for t.
func coerce(t abi.Type, v interface{}) (interface{}, error) {
	switch t.T {
	case abi.AddressTy:
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, err
		}
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid address %q", s)
		}
		return common.HexToAddress(s), nil
	case abi.UintTy, abi.IntTy:
		return coerceInt(t, v)
	case abi.BoolTy:
		return cast.ToBoolE(v)
	case abi.StringTy:
		return cast.ToStringE(v)
	case abi.BytesTy:
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, err
		}
		return hexutil.Decode(s)
	case abi.FixedBytesTy:
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, err
		}
		raw, err := hexutil.Decode(s)
		if err != nil {
			return nil, err
		}
		if len(raw) > t.Size {
			return nil, fmt.Errorf("bytes%d: got %d bytes", t.Size, len(raw))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(raw))
		return arr.Interface(), nil
	default:
		return nil, fmt.Errorf("unsupported argument type %s", t.String())
	}
}

func coerceInt(t abi.Type, v interface{}) (interface{}, error) {
	n, err := toBig(v)
	if err != nil {
		return nil, err
	}
	if t.T == abi.UintTy && n.Sign() < 0 {
		return nil, fmt.Errorf("negative value %s for %s", n, t.String())
	}
	if !fitsInt(t, n) {
		return nil, fmt.Errorf("value %s overflows %s", n, t.String())
	}
	if t.T == abi.UintTy {
		switch t.Size {
		case 8:
			return cast.ToUint8E(n.Uint64())
		case 16:
			return cast.ToUint16E(n.Uint64())
		case 32:
			return cast.ToUint32E(n.Uint64())
		case 64:
			return n.Uint64(), nil
		}
		return n, nil
	}
	switch t.Size {
	case 8:
		return cast.ToInt8E(n.Int64())
	case 16:
		return cast.ToInt16E(n.Int64())
	case 32:
		return cast.ToInt32E(n.Int64())
	case 64:
		return n.Int64(), nil
	}
	return n, nil
}

// fitsInt reports whether n lies in [0, 2^size) for uints and in
// [-2^(size-1), 2^(size-1)) for ints.
func fitsInt(t abi.Type, n *big.Int) bool {
	if t.T == abi.UintTy {
		return n.BitLen() <= t.Size
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
	if n.Sign() >= 0 {
		return n.Cmp(limit) < 0
	}
	return n.Cmp(new(big.Int).Neg(limit)) >= 0
}

func toBig(v interface{}) (*big.Int, error) {
	switch x := v.(type) {
	case *big.Int:
		return new(big.Int).Set(x), nil
	case json.Number:
		return parseBig(x.String())
	case string:
		return parseBig(x)
	}
	i, err := cast.ToInt64E(v)
	if err != nil {
		return nil, err
	}
	return big.NewInt(i), nil
}

func parseBig(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return n, nil
}
