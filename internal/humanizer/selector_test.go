package humanizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelector(t *testing.T) {
	sel, err := ParseSelector(" 0x3d18b912 ")
	require.NoError(t, err)
	assert.Equal(t, SignatureSelector("getReward()"), sel)

	_, err = ParseSelector("0x3d18")
	assert.ErrorContains(t, err, "want 4 bytes")
	_, err = ParseSelector("nope")
	assert.Error(t, err)
}

func TestSelectorFromData(t *testing.T) {
	_, ok := SelectorFromData([]byte{1, 2, 3})
	assert.False(t, ok)

	sel, ok := SelectorFromData([]byte{0xa9, 0x05, 0x9c, 0xbb, 0xff})
	require.True(t, ok)
	assert.Equal(t, "0xa9059cbb", sel.String())
}

func TestSelectorJSON(t *testing.T) {
	in := struct {
		Selector Selector `json:"selector"`
	}{Selector: SignatureSelector("transfer(address,uint256)")}

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"selector":"0xa9059cbb"}`, string(raw))

	var out struct {
		Selector Selector `json:"selector"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in.Selector, out.Selector)
}
