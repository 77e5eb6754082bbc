package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the loaders read.
const EnvPrefix = "HUMANIZER"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Common holds settings shared by every command.
type Common struct {
	RPCURL       string `validate:"omitempty,url"`
	Info         string
	PGDSN        string
	Bindings     map[string][]string `validate:"dive,dive,eth_addr"`
	ChainID      uint64
	Extended     bool
	MaxRetries   int           `validate:"gte=0"`
	RetryBackoff time.Duration `validate:"gte=0"`
	Concurrency  int           `validate:"gte=0"`
	LogLevel     string        `validate:"oneof=debug info warn error"`
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("max-retries", 5)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("concurrency", 4)
	v.SetDefault("log-level", "info")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return v, nil
}

func loadCommon(v *viper.Viper) (Common, error) {
	bindings, err := ParseBindings(getStringMap(v, "bindings"))
	if err != nil {
		return Common{}, err
	}
	return Common{
		RPCURL:       v.GetString("rpc"),
		Info:         v.GetString("info"),
		PGDSN:        v.GetString("pg-dsn"),
		Bindings:     bindings,
		ChainID:      v.GetUint64("chain-id"),
		Extended:     v.GetBool("extended"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		Concurrency:  v.GetInt("concurrency"),
		LogLevel:     v.GetString("log-level"),
	}, nil
}

// LoadCommon reads the shared settings used by the inspection commands.
func LoadCommon(cfgFile string, flags *pflag.FlagSet) (Common, error) {
	v, err := newViper(cfgFile, flags, nil)
	if err != nil {
		return Common{}, err
	}
	cfg, err := loadCommon(v)
	if err != nil {
		return Common{}, err
	}
	if err := validate.Struct(cfg); err != nil {
		return Common{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func getStringMap(v *viper.Viper, key string) map[string]string {
	if !v.IsSet(key) {
		return map[string]string{}
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case map[string]string:
		return typed
	case map[string]interface{}:
		out := make(map[string]string, len(typed))
		for k, v := range typed {
			switch items := v.(type) {
			case []interface{}:
				parts := make([]string, 0, len(items))
				for _, item := range items {
					parts = append(parts, fmt.Sprintf("%v", item))
				}
				out[k] = strings.Join(parts, ";")
			default:
				out[k] = fmt.Sprintf("%v", v)
			}
		}
		return out
	case string:
		return parseStringMap(typed)
	default:
		return map[string]string{}
	}
}

func parseStringMap(input string) map[string]string {
	out := make(map[string]string)
	if strings.TrimSpace(input) == "" {
		return out
	}
	pairs := strings.Split(input, ",")
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}
