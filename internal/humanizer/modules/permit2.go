package modules

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"txHumanizer/internal/humanizer"
	"txHumanizer/internal/model"
)

// Permit2Name is the Uniswap Permit2 allowance module.
const Permit2Name = "Permit2"

// Permit2Address is the canonical Permit2 deployment, identical on every chain.
var Permit2Address = common.HexToAddress("0x000000000022D473030F116dDEE9F6B43aC78BA3")

const (
	permitSingleSig   = "permit(address,((address,uint160,uint48,uint48),address,uint256),bytes)"
	permitBatchSig    = "permit(address,((address,uint160,uint48,uint48)[],address,uint256),bytes)"
	transferBatchSig  = "transferFrom((address,address,uint160,address)[])"
	transferSingleSig = "transferFrom(address,address,uint160,address)"
)

type permitDetails struct {
	Token      common.Address
	Amount     *big.Int
	Expiration *big.Int
	Nonce      *big.Int
}

type permitSingle struct {
	Details     permitDetails
	Spender     common.Address
	SigDeadline *big.Int
}

type permitBatch struct {
	Details     []permitDetails
	Spender     common.Address
	SigDeadline *big.Int
}

type allowanceTransfer struct {
	From   common.Address
	To     common.Address
	Amount *big.Int
	Token  common.Address
}

// Permit2 builds the Permit2 module.
func Permit2(info *model.HumanizerInfo) (humanizer.ContractModule, error) {
	parsed, err := ModuleABI(info, Permit2Name)
	if err != nil {
		return humanizer.ContractModule{}, err
	}
	return humanizer.ContractModule{
		Name: Permit2Name,
		ABI:  parsed,
		Methods: []humanizer.MethodSpec{
			{Signature: "approve(address,address,uint160,uint48)", Summary: permit2Approve},
			{Signature: permitSingleSig, Summary: permit2PermitSingle},
			{Signature: permitBatchSig, Summary: permit2PermitBatch},
			{Signature: transferBatchSig, Summary: permit2TransferBatch},
			{Signature: transferSingleSig, Summary: permit2TransferSingle},
		},
	}, nil
}

func permit2Approve(ctx *humanizer.DecodeContext) (*humanizer.Summary, error) {
	token, err := ctx.Inputs.AddressAt(0)
	if err != nil {
		return nil, err
	}
	spender, err := ctx.Inputs.AddressAt(1)
	if err != nil {
		return nil, err
	}
	amount, err := ctx.Inputs.BigIntAt(2)
	if err != nil {
		return nil, err
	}
	expiration, err := ctx.Inputs.BigIntAt(3)
	if err != nil {
		return nil, err
	}

	s := humanizer.NewSummary()
	addApproval(s, ctx, approval{
		verb:     "Approve",
		spender:  spender,
		token:    token.Hex(),
		amount:   amount,
		maxBits:  160,
		deadline: ctx.Deadline(expiration),
	})
	return s, nil
}

func permit2PermitSingle(ctx *humanizer.DecodeContext) (*humanizer.Summary, error) {
	var permit permitSingle
	if err := ctx.Inputs.Tuple("permitSingle", &permit); err != nil {
		return nil, err
	}
	s := humanizer.NewSummary()
	addPermit(s, ctx, permit.Spender, permit.Details, permit.SigDeadline)
	return s, nil
}

func permit2PermitBatch(ctx *humanizer.DecodeContext) (*humanizer.Summary, error) {
	var permit permitBatch
	if err := ctx.Inputs.Tuple("permitBatch", &permit); err != nil {
		return nil, err
	}
	s := humanizer.NewSummary()
	for _, details := range permit.Details {
		addPermit(s, ctx, permit.Spender, details, permit.SigDeadline)
	}
	return s, nil
}

// addPermit reports the allowance expiry; the signature deadline only bounds
// when the permit may be submitted.
func addPermit(s *humanizer.Summary, ctx *humanizer.DecodeContext, spender common.Address, d permitDetails, sigDeadline *big.Int) {
	deadline := ctx.Deadline(d.Expiration)
	if deadline == "" {
		deadline = ctx.Deadline(sigDeadline)
	}
	addApproval(s, ctx, approval{
		verb:     "Permit",
		spender:  spender,
		token:    d.Token.Hex(),
		amount:   d.Amount,
		maxBits:  160,
		deadline: deadline,
	})
}

func permit2TransferSingle(ctx *humanizer.DecodeContext) (*humanizer.Summary, error) {
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
	token, err := ctx.Inputs.AddressAt(3)
	if err != nil {
		return nil, err
	}
	s := humanizer.NewSummary()
	addTransfer(s, ctx, "Transfer", from, to, token.Hex(), amount)
	return s, nil
}

func permit2TransferBatch(ctx *humanizer.DecodeContext) (*humanizer.Summary, error) {
	var transfers []allowanceTransfer
	if err := ctx.Inputs.Tuple("transferDetails", &transfers); err != nil {
		return nil, err
	}
	s := humanizer.NewSummary()
	for _, t := range transfers {
		addTransfer(s, ctx, "Transfer", t.From, t.To, t.Token.Hex(), t.Amount)
	}
	return s, nil
}
