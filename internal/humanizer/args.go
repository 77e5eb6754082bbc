package humanizer

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Inputs are the unpacked arguments of one call, addressable by ABI name
// or position.
type Inputs struct {
	names  []string
	values []interface{}
}

func newInputs(args abi.Arguments, values []interface{}) Inputs {
	names := make([]string, len(values))
	for i := range values {
		if i < len(args) && args[i].Name != "" {
			names[i] = args[i].Name
		} else {
			names[i] = fmt.Sprintf("arg%d", i)
		}
	}
	return Inputs{names: names, values: values}
}

// Len returns the number of arguments.
func (in Inputs) Len() int {
	return len(in.values)
}

// Value returns an argument by name.
func (in Inputs) Value(name string) (interface{}, bool) {
	for i, n := range in.names {
		if n == name {
			return in.values[i], true
		}
	}
	return nil, false
}

// At returns an argument by position.
func (in Inputs) At(i int) (interface{}, bool) {
	if i < 0 || i >= len(in.values) {
		return nil, false
	}
	return in.values[i], true
}

// Map returns the arguments keyed by name.
func (in Inputs) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(in.values))
	for i, n := range in.names {
		out[n] = in.values[i]
	}
	return out
}

// BigInt reads a named integer argument.
func (in Inputs) BigInt(name string) (*big.Int, error) {
	v, ok := in.Value(name)
	if !ok {
		return nil, fmt.Errorf("missing argument %s", name)
	}
	return asBigInt(v)
}

// BigIntAt reads a positional integer argument.
func (in Inputs) BigIntAt(i int) (*big.Int, error) {
	v, ok := in.At(i)
	if !ok {
		return nil, fmt.Errorf("missing argument %d", i)
	}
	return asBigInt(v)
}

// Address reads a named address argument.
func (in Inputs) Address(name string) (common.Address, error) {
	v, ok := in.Value(name)
	if !ok {
		return common.Address{}, fmt.Errorf("missing argument %s", name)
	}
	return asAddress(v)
}

// AddressAt reads a positional address argument.
func (in Inputs) AddressAt(i int) (common.Address, error) {
	v, ok := in.At(i)
	if !ok {
		return common.Address{}, fmt.Errorf("missing argument %d", i)
	}
	return asAddress(v)
}

// Tuple converts a named tuple (or tuple slice) argument into out, which
// must point to a struct (or slice of structs) with fields in ABI order.
func (in Inputs) Tuple(name string, out interface{}) error {
	v, ok := in.Value(name)
	if !ok {
		return fmt.Errorf("missing argument %s", name)
	}
	return convertTuple(v, out)
}

// Addresses collects every address in the arguments, including those
// nested in tuples and arrays.
func (in Inputs) Addresses() []common.Address {
	var out []common.Address
	for _, v := range in.values {
		out = collectAddresses(v, out)
	}
	return out
}

func convertTuple(v interface{}, out interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("convert %T into %T: %v", v, out, r)
		}
	}()
	abi.ConvertType(v, out)
	return nil
}

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}
