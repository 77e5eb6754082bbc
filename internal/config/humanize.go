package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// HumanizeConfig holds configuration for the batch humanize command.
type HumanizeConfig struct {
	Common
	In                string `validate:"required"`
	Out               string `validate:"required"`
	Errors            string
	Mined             bool
	Checkpoint        string
	CheckpointEnabled bool
	BatchSize         int `validate:"gt=0"`
}

// LoadHumanize merges config file, environment variables, and flags into HumanizeConfig.
func LoadHumanize(cfgFile string, flags *pflag.FlagSet) (HumanizeConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"out":                "./data/summaries.jsonl",
		"errors":             "./data/humanize_errors.jsonl",
		"checkpoint":         "./data/humanize_checkpoint.json",
		"checkpoint-enabled": true,
		"batch-size":         500,
		"mined":              true,
	})
	if err != nil {
		return HumanizeConfig{}, err
	}
	common, err := loadCommon(v)
	if err != nil {
		return HumanizeConfig{}, err
	}

	cfg := HumanizeConfig{
		Common:            common,
		In:                v.GetString("in"),
		Out:               v.GetString("out"),
		Errors:            v.GetString("errors"),
		Mined:             v.GetBool("mined"),
		Checkpoint:        v.GetString("checkpoint"),
		CheckpointEnabled: v.GetBool("checkpoint-enabled"),
		BatchSize:         v.GetInt("batch-size"),
	}
	if err := validate.Struct(cfg); err != nil {
		return HumanizeConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
