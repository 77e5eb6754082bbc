package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const infoFixture = `{
  "names": {"0xAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaa": "Uniswap Router"},
  "tokens": {"0xBBBBbbbbBBBBbbbbBBBBbbbbBBBBbbbbBBBBbbbb": {"symbol": "USDC", "decimals": 6, "name": "USD Coin"}}
}`

func TestHumanizerInfoNormalize(t *testing.T) {
	var raw HumanizerInfo
	require.NoError(t, json.Unmarshal([]byte(infoFixture), &raw))
	info := raw.Normalize()
	require.NoError(t, info.Validate())

	name, ok := info.Name("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	require.True(t, ok)
	assert.Equal(t, "Uniswap Router", name)

	meta, ok := info.Token("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB")
	require.True(t, ok)
	want := TokenMeta{
		Address:  "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Decimals: 6,
		Symbol:   "USDC",
		Name:     "USD Coin",
	}
	if diff := cmp.Diff(want, meta); diff != "" {
		t.Fatalf("token meta mismatch (-want +got):\n%s", diff)
	}
}

func TestHumanizerInfoMergesWithoutMutation(t *testing.T) {
	base := HumanizerInfo{Names: map[string]string{"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa": "Router"}}.Normalize()

	merged := base.WithNames(map[string]string{
		"0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA": "Other",
		"0xcccccccccccccccccccccccccccccccccccccccc": "Vault",
	})
	merged = merged.WithTokens([]TokenMeta{{Address: "0xDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDD", Symbol: "DAI", Decimals: 18}})

	assert.Len(t, base.Names, 1)
	assert.Empty(t, base.Tokens)

	name, _ := merged.Name("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	assert.Equal(t, "Router", name)
	name, _ = merged.Name("0xcccccccccccccccccccccccccccccccccccccccc")
	assert.Equal(t, "Vault", name)
	_, ok := merged.Token("0xdddddddddddddddddddddddddddddddddddddddd")
	assert.True(t, ok)
}

func TestHumanizerInfoValidateRejectsBadKeys(t *testing.T) {
	info := HumanizerInfo{Names: map[string]string{"router": "Router"}}.Normalize()
	assert.Error(t, info.Validate())
}

func TestHumanizerInfoNilSafe(t *testing.T) {
	var info *HumanizerInfo
	_, ok := info.Name("0x00")
	assert.False(t, ok)
	_, ok = info.Token("0x00")
	assert.False(t, ok)
	assert.NotNil(t, info.WithNames(map[string]string{"0xcccccccccccccccccccccccccccccccccccccccc": "Vault"}))
}
