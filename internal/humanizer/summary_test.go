package humanizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"txHumanizer/internal/model"
)

func TestTokenLabel(t *testing.T) {
	cases := []struct {
		name string
		ref  model.TokenRef
		want string
	}{
		{name: "known with amount", ref: model.TokenRef{Address: "0xb", Amount: "120500000", Decimals: 6, Symbol: "USDC", Known: true}, want: "120.5 USDC"},
		{name: "known grouping", ref: model.TokenRef{Address: "0xb", Amount: "1234567000000", Decimals: 6, Symbol: "USDC", Known: true}, want: "1,234,567 USDC"},
		{name: "precision caps digits", ref: model.TokenRef{Address: "0xb", Amount: "123456789", Decimals: 8, Symbol: "LP", Precision: 4, Known: true}, want: "1.2346 LP"},
		{name: "known no amount", ref: model.TokenRef{Address: "0xb", Symbol: "USDC", Known: true}, want: "USDC"},
		{name: "unknown with amount", ref: model.TokenRef{Address: "0xb", Amount: "42", Symbol: "0xb"}, want: "42 units of 0xb"},
		{name: "unknown no amount", ref: model.TokenRef{Address: "0xb", Symbol: "Vault"}, want: "Vault"},
		{name: "empty address no amount", ref: model.TokenRef{}, want: ""},
		{name: "empty address with amount", ref: model.TokenRef{Amount: "42"}, want: "42 units"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TokenLabel(tc.ref))
		})
	}
}

func TestSummaryRendering(t *testing.T) {
	s := NewSummary()
	s.Action("approve").
		Text("Approve").
		Address(model.AddressRef{Address: "0xa", Name: "Router"}).
		Text("to use your").
		Token(model.TokenRef{Address: "0xb", Symbol: "USDC", Known: true}).
		Note("expires in 3 minutes")
	s.Action("revoke").Text("Revoke approval for").Address(model.AddressRef{Address: "0xa"}).Text("to use").Token(model.TokenRef{}).Note("")

	assert.Equal(t, []string{
		"Approve Router to use your USDC, expires in 3 minutes",
		"Revoke approval for 0xa to use",
	}, s.Lines())

	actions := s.Actions()
	assert.Len(t, actions, 2)
	assert.Equal(t, "approve", actions[0].Kind)
	assert.Len(t, actions[0].Segments, 5)

	// Returned actions are copies.
	actions[0].Segments[0].Text = "changed"
	assert.Equal(t, "Approve Router to use your USDC, expires in 3 minutes", s.Lines()[0])
}

func TestEmptySummary(t *testing.T) {
	var s *Summary
	assert.Nil(t, s.Lines())
	assert.Empty(t, NewSummary().Lines())
}
