package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"txHumanizer/internal/config"
	"txHumanizer/internal/render"
)

func newSelectorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selectors",
		Short: "List every registered selector and the module handling it",
		RunE:  runSelectors,
	}
	addCommonFlags(cmd)
	cmd.Flags().Bool("json", false, "print the table as JSON")
	return cmd
}

func runSelectors(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadCommon(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg.RPCURL = ""
	rt, err := setup(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	snapshot := rt.engine.Registry().Snapshot()
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot)
	}
	_, err = fmt.Fprintln(out, render.Selectors(snapshot))
	return err
}
