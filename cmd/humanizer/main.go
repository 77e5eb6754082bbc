package main

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "humanizer",
		Short:        "Turn contract calls into readable summaries",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			return nil
		},
	}

	root.PersistentFlags().String("config", "", "config file path")

	root.AddCommand(
		newHumanizeCmd(),
		newTxCmd(),
		newPlanCmd(),
		newSelectorsCmd(),
		newLookupCmd(),
	)
	return root
}

// addCommonFlags registers the flags every command shares.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("info", "", "humanizer info JSON (names, tokens, ABI overrides)")
	cmd.Flags().String("bindings", "", "extra module addresses (module=addr;addr,...)")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN for the address book and sinks")
	cmd.Flags().Bool("extended", false, "emit structured actions instead of text lines")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func addRPCFlags(cmd *cobra.Command) {
	cmd.Flags().String("rpc", "", "RPC URL used for metadata reads")
	cmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	cmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	cmd.Flags().Int("concurrency", 4, "parallel metadata reads")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
