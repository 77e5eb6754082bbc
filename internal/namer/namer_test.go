package namer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"txHumanizer/internal/model"
)

func testInfo() *model.HumanizerInfo {
	return model.HumanizerInfo{
		Names: map[string]string{
			"0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA": "Uniswap",
			"0xcccccccccccccccccccccccccccccccccccccccc": "Named Token",
		},
		Tokens: map[string]model.TokenMeta{
			"0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb": {Symbol: "USDC", Decimals: 6},
			"0xcccccccccccccccccccccccccccccccccccccccc": {Symbol: "TKN", Decimals: 18},
		},
	}.Normalize()
}

func TestResolveName(t *testing.T) {
	info := testInfo()
	cases := []struct {
		name    string
		address string
		want    string
	}{
		{name: "known name any case", address: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", want: "Uniswap"},
		{name: "token symbol", address: "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB", want: "USDC"},
		{name: "name wins over symbol", address: "0xcccccccccccccccccccccccccccccccccccccccc", want: "Named Token"},
		{name: "unknown verbatim", address: "0xDdDdDdDdDdDdDdDdDdDdDdDdDdDdDdDdDdDdDdDd", want: "0xDdDdDdDdDdDdDdDdDdDdDdDdDdDdDdDdDdDdDdDd"},
		{name: "malformed", address: "not-an-address", want: "not-an-address"},
		{name: "empty", address: "", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveName(info, tc.address))
		})
	}
}

func TestResolveNameNilInfo(t *testing.T) {
	assert.Equal(t, "0xabc", ResolveName(nil, "0xabc"))
	_, ok := Token(nil, "0xabc")
	assert.False(t, ok)
	assert.Equal(t, model.AddressRef{Address: "0xabc", Name: "0xabc"}, Address(nil, "0xabc"))
}
