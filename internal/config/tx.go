package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// TxConfig holds configuration for humanizing a single on-chain transaction.
type TxConfig struct {
	Common
}

// LoadTx merges config file, environment variables, and flags into TxConfig.
func LoadTx(cfgFile string, flags *pflag.FlagSet) (TxConfig, error) {
	v, err := newViper(cfgFile, flags, nil)
	if err != nil {
		return TxConfig{}, err
	}
	common, err := loadCommon(v)
	if err != nil {
		return TxConfig{}, err
	}
	cfg := TxConfig{Common: common}
	if err := validate.Struct(cfg); err != nil {
		return TxConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.RPCURL == "" {
		return TxConfig{}, fmt.Errorf("rpc url is required")
	}
	return cfg, nil
}

// PlanConfig holds configuration for humanizing a call plan.
type PlanConfig struct {
	Common
	Plan  string `validate:"required"`
	Mined bool
}

// LoadPlan merges config file, environment variables, and flags into PlanConfig.
func LoadPlan(cfgFile string, flags *pflag.FlagSet) (PlanConfig, error) {
	v, err := newViper(cfgFile, flags, nil)
	if err != nil {
		return PlanConfig{}, err
	}
	common, err := loadCommon(v)
	if err != nil {
		return PlanConfig{}, err
	}
	cfg := PlanConfig{
		Common: common,
		Plan:   v.GetString("plan"),
		Mined:  v.GetBool("mined"),
	}
	if err := validate.Struct(cfg); err != nil {
		return PlanConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
