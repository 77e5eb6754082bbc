package modules

import (
	"txHumanizer/internal/humanizer"
	"txHumanizer/internal/model"
)

// ERC20Name is the generic fungible token module.
const ERC20Name = "ERC20"

// ERC20 builds the token module. Arguments are read by position so ABIs
// with other parameter names still decode.
func ERC20(info *model.HumanizerInfo) (humanizer.ContractModule, error) {
	parsed, err := ModuleABI(info, ERC20Name)
	if err != nil {
		return humanizer.ContractModule{}, err
	}
	return humanizer.ContractModule{
		Name: ERC20Name,
		ABI:  parsed,
		Methods: []humanizer.MethodSpec{
			{Signature: "approve(address,uint256)", Selector: "0x095ea7b3", Summary: erc20Approve},
			{Signature: "transfer(address,uint256)", Selector: "0xa9059cbb", Summary: erc20Transfer},
			{Signature: "transferFrom(address,address,uint256)", Selector: "0x23b872dd", Summary: erc20TransferFrom},
		},
	}, nil
}

func erc20Approve(ctx *humanizer.DecodeContext) (*humanizer.Summary, error) {
	spender, err := ctx.Inputs.AddressAt(0)
	if err != nil {
		return nil, err
	}
	amount, err := ctx.Inputs.BigIntAt(1)
	if err != nil {
		return nil, err
	}
	s := humanizer.NewSummary()
	addApproval(s, ctx, approval{
		verb:    "Approve",
		spender: spender,
		token:   ctx.Tx.To,
		amount:  amount,
		maxBits: 256,
	})
	return s, nil
}

func erc20Transfer(ctx *humanizer.DecodeContext) (*humanizer.Summary, error) {
	to, err := ctx.Inputs.AddressAt(0)
	if err != nil {
		return nil, err
	}
	amount, err := ctx.Inputs.BigIntAt(1)
	if err != nil {
		return nil, err
	}
	s := humanizer.NewSummary()
	s.Action("send").
		Text("Send").
		Token(ctx.TokenAmount(ctx.Tx.To, amount, 0)).
		Text("to").
		Address(ctx.AddressRef(to))
	return s, nil
}

func erc20TransferFrom(ctx *humanizer.DecodeContext) (*humanizer.Summary, error) {
	from, err := ctx.Inputs.AddressAt(0)
	if err != nil {
		return nil, err
	}
	to, err := ctx.Inputs.AddressAt(1)
	if err != nil {
		return nil, err
	}
	amount, err := ctx.Inputs.BigIntAt(2)
	if err != nil {
		return nil, err
	}
	s := humanizer.NewSummary()
	addTransfer(s, ctx, "Send", from, to, ctx.Tx.To, amount)
	return s, nil
}
