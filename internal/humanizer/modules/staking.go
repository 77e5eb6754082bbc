package modules

import (
	"txHumanizer/internal/humanizer"
	"txHumanizer/internal/model"
)

// StakingRewardsName is the Synthetix-style staking rewards module.
const StakingRewardsName = "synthetixStakingRewards"

// LPTokenKey is the contract metadata key holding the staking token.
const LPTokenKey = "lpToken"

// stakingDisplayPrecision caps fraction digits of staked amounts.
const stakingDisplayPrecision = 8

// StakingRewards builds the staking rewards module.
func StakingRewards(info *model.HumanizerInfo) (humanizer.ContractModule, error) {
	parsed, err := ModuleABI(info, StakingRewardsName)
	if err != nil {
		return humanizer.ContractModule{}, err
	}
	return humanizer.ContractModule{
		Name: StakingRewardsName,
		ABI:  parsed,
		Methods: []humanizer.MethodSpec{
			{Name: "getReward", Selector: "0x3d18b912", Summary: stakingGetReward},
			{Name: "exit", Selector: "0xe9fad8ee", Summary: stakingExit},
			{Signature: "withdraw(uint256)", Selector: "0x2e1a7d4d", Summary: stakingWithdraw},
			{Signature: "stake(uint256)", Selector: "0xa694fc3a", Summary: stakingStake},
		},
		Reads: []humanizer.MetaRead{{Key: LPTokenKey, Method: "stakingToken"}},
	}, nil
}

func stakingGetReward(ctx *humanizer.DecodeContext) (*humanizer.Summary, error) {
	s := humanizer.NewSummary()
	s.Action("claim").Text("Claim rewards")
	return s, nil
}

func stakingExit(ctx *humanizer.DecodeContext) (*humanizer.Summary, error) {
	s := humanizer.NewSummary()
	s.Action("exit").Text("Exit")
	return s, nil
}

func stakingWithdraw(ctx *humanizer.DecodeContext) (*humanizer.Summary, error) {
	return stakingAmount(ctx, "exit", "Withdraw")
}

func stakingStake(ctx *humanizer.DecodeContext) (*humanizer.Summary, error) {
	return stakingAmount(ctx, "stake", "Stake")
}

func stakingAmount(ctx *humanizer.DecodeContext, kind, verb string) (*humanizer.Summary, error) {
	amount, err := ctx.Inputs.BigIntAt(0)
	if err != nil {
		return nil, err
	}
	s := humanizer.NewSummary()
	s.Action(kind).
		Text(verb).
		Token(ctx.TokenAmount(ctx.Contract.Get(LPTokenKey), amount, stakingDisplayPrecision))
	return s, nil
}
