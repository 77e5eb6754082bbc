package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"txHumanizer/internal/config"
	"txHumanizer/internal/humanizer"
	"txHumanizer/internal/model"
	"txHumanizer/internal/render"
)

func newTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx <hash>",
		Short: "Fetch a transaction over RPC and humanize it",
		Args:  cobra.ExactArgs(1),
		RunE:  runTx,
	}
	addCommonFlags(cmd)
	addRPCFlags(cmd)
	cmd.Flags().Bool("json", false, "print the result as JSON")
	return cmd
}

func runTx(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadTx(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	hash := args[0]
	if len(common.FromHex(hash)) != common.HashLength {
		return fmt.Errorf("invalid tx hash: %s", hash)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	rt, err := setup(ctx, cfg.Common, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	tx, mined, err := rt.chain.Transaction(ctx, common.HexToHash(hash))
	if err != nil {
		return err
	}
	info, meta, err := rt.enrich(ctx, tx)
	if err != nil {
		return err
	}

	network := model.NetworkByChainID(tx.ChainID)
	res, err := rt.engine.Humanize(tx, network, info, meta, humanizer.Options{
		Extended: cfg.Extended,
		Mined:    mined,
	})
	if err != nil {
		logger.Warn("humanize failed", zap.String("tx", tx.Hash), zap.Error(err))
		return err
	}
	return printResult(cmd, res, network, asJSON)
}

func printResult(cmd *cobra.Command, res *humanizer.Result, network model.Network, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	_, err := fmt.Fprintln(out, render.Result(res, network))
	return err
}
