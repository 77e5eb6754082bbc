package humanizer

import (
	"reflect"

	"github.com/ethereum/go-ethereum/common"
)

var addressType = reflect.TypeOf(common.Address{})

func collectAddresses(v interface{}, out []common.Address) []common.Address {
	if v == nil {
		return out
	}
	return walkAddresses(reflect.ValueOf(v), out)
}

func walkAddresses(rv reflect.Value, out []common.Address) []common.Address {
	if !rv.IsValid() {
		return out
	}
	if rv.Type() == addressType {
		return append(out, rv.Interface().(common.Address))
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return out
		}
		return walkAddresses(rv.Elem(), out)
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if rv.Type().Field(i).IsExported() {
				out = walkAddresses(rv.Field(i), out)
			}
		}
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return out
		}
		for i := 0; i < rv.Len(); i++ {
			out = walkAddresses(rv.Index(i), out)
		}
	}
	return out
}
