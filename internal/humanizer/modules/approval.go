package modules

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"txHumanizer/internal/format"
	"txHumanizer/internal/humanizer"
)

// approval describes an allowance grant common to ERC20 and Permit2.
type approval struct {
	verb     string
	spender  common.Address
	token    string
	amount   *big.Int
	maxBits  int
	deadline string
}

// addApproval appends the revoke, unlimited or bounded phrasing.
func addApproval(s *humanizer.Summary, ctx *humanizer.DecodeContext, a approval) {
	switch {
	case a.amount == nil || a.amount.Sign() == 0:
		s.Action("revoke").
			Text("Revoke approval for").
			Address(ctx.AddressRef(a.spender)).
			Text("to use").
			Token(ctx.TokenName(a.token)).
			Note(a.deadline)
	case format.IsMaxUint(a.amount, a.maxBits):
		s.Action("approve").
			Text(a.verb).
			Address(ctx.AddressRef(a.spender)).
			Text("to use your").
			Token(ctx.TokenName(a.token)).
			Note(a.deadline)
	default:
		s.Action("approve").
			Text(a.verb).
			Address(ctx.AddressRef(a.spender)).
			Text("to use").
			Token(ctx.TokenAmount(a.token, a.amount, 0)).
			Note(a.deadline)
	}
}

// addTransfer appends "Transfer <amount> [from X] to Y", omitting the source
// when it is the sender.
func addTransfer(s *humanizer.Summary, ctx *humanizer.DecodeContext, verb string, from, to common.Address, token string, amount *big.Int) {
	b := s.Action("send").Text(verb).Token(ctx.TokenAmount(token, amount, 0))
	if !ctx.IsSender(from) {
		b.Text("from").Address(ctx.AddressRef(from))
	}
	b.Text("to").Address(ctx.AddressRef(to))
}
