package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"txHumanizer/internal/config"
	"txHumanizer/internal/humanizer/modules"
	"txHumanizer/internal/namer"
	"txHumanizer/internal/render"
)

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <query>",
		Short: "Fuzzy search known names and token symbols",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLookup,
	}
	addCommonFlags(cmd)
	cmd.Flags().Int("limit", 10, "maximum number of matches")
	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadCommon(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

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

	source := namer.NewSource(rt.info, modules.KnownContracts())
	matches := namer.Search(strings.Join(args, " "), source, limit)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Matches(matches))
	return err
}
