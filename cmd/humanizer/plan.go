package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"txHumanizer/internal/callplan"
	"txHumanizer/internal/config"
	"txHumanizer/internal/humanizer"
	"txHumanizer/internal/model"
	"txHumanizer/internal/render"
)

type planStep struct {
	Step   int                     `json:"step"`
	Tx     model.TransactionRecord `json:"tx"`
	Result *humanizer.Result       `json:"result"`
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build the calls of a plan file and humanize each one",
		RunE:  runPlan,
	}
	addCommonFlags(cmd)
	addRPCFlags(cmd)
	cmd.Flags().String("plan", "", "plan JSON file")
	cmd.Flags().Bool("mined", false, "suppress deadline notes")
	cmd.Flags().Bool("json", false, "print built calls and results as JSON")
	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadPlan(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	plan, err := callplan.Load(cfg.Plan)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	rt, err := setup(ctx, cfg.Common, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	txs, err := plan.Build(plan.Env(), rt.engine.Registry())
	if err != nil {
		return err
	}

	network := model.NetworkByChainID(plan.ChainID)
	steps := make([]planStep, 0, len(txs))
	for i, tx := range txs {
		info, meta, err := rt.enrich(ctx, tx)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		res, err := rt.engine.Humanize(tx, network, info, meta, humanizer.Options{
			Extended: cfg.Extended,
			Mined:    cfg.Mined,
		})
		if err != nil {
			logger.Warn("humanize step failed", zap.Int("step", i), zap.Error(err))
			return fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, planStep{Step: i, Tx: tx, Result: res})
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(steps)
	}
	for _, step := range steps {
		fmt.Fprintf(out, "%s\n%s\n", render.Meta(fmt.Sprintf("step %d → %s", step.Step, step.Tx.To)), render.Result(step.Result, network))
	}
	return nil
}
