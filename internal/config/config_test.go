package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	addrA = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	addrB = "0x4200000000000000000000000000000000000006"
)

func humanizeFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("humanize", pflag.ContinueOnError)
	flags.String("in", "", "")
	flags.String("bindings", "", "")
	flags.Bool("extended", false, "")
	flags.Int("batch-size", 500, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadHumanizeFromFlagsAndEnv(t *testing.T) {
	t.Setenv("HUMANIZER_BATCH_SIZE", "7")
	t.Setenv("HUMANIZER_RETRY_BACKOFF", "2s")

	cfg, err := LoadHumanize("", humanizeFlags(t, "--in", "txs.jsonl", "--extended", "--bindings", "WETH="+addrA+";"+addrB))
	require.NoError(t, err)

	assert.Equal(t, "txs.jsonl", cfg.In)
	assert.Equal(t, "./data/summaries.jsonl", cfg.Out)
	assert.True(t, cfg.Extended)
	assert.True(t, cfg.Mined)
	assert.True(t, cfg.CheckpointEnabled)
	assert.Equal(t, 7, cfg.BatchSize)
	assert.Equal(t, 2*time.Second, cfg.RetryBackoff)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, map[string][]string{"WETH": {addrA, addrB}}, cfg.Bindings)
}

func TestLoadHumanizeRequiresInput(t *testing.T) {
	_, err := LoadHumanize("", humanizeFlags(t))
	assert.ErrorContains(t, err, "invalid config")
}

func TestLoadHumanizeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
in: ./txs.jsonl
log-level: debug
chain-id: 137
bindings:
  WETH:
    - `+addrB+`
`), 0o644))

	cfg, err := LoadHumanize(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "./txs.jsonl", cfg.In)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint64(137), cfg.ChainID)
	assert.Equal(t, []string{addrB}, cfg.Bindings["weth"])
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("HUMANIZER_LOG_LEVEL", "loud")
	_, err := LoadCommon("", nil)
	assert.ErrorContains(t, err, "invalid config")
}

func TestLoadTxRequiresRPC(t *testing.T) {
	_, err := LoadTx("", nil)
	assert.EqualError(t, err, "rpc url is required")

	t.Setenv("HUMANIZER_RPC", "https://eth.example.org")
	cfg, err := LoadTx("", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://eth.example.org", cfg.RPCURL)
}

func TestLoadPlan(t *testing.T) {
	_, err := LoadPlan("", nil)
	assert.ErrorContains(t, err, "invalid config")

	t.Setenv("HUMANIZER_PLAN", "deposit.json")
	cfg, err := LoadPlan("", nil)
	require.NoError(t, err)
	assert.Equal(t, "deposit.json", cfg.Plan)
}
