package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-transport/pkg/analysis"
	"github.com/edp1096/toy-transport/pkg/scenario"
	"github.com/edp1096/toy-transport/pkg/store"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run the analysis described by a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printMatrix, _ := cmd.Flags().GetBool("print-matrix")

			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			sys, err := sc.BuildSystem()
			if err != nil {
				return fmt.Errorf("building %s: %w", sc.Model.Kind, err)
			}
			defer sys.Destroy()
			slog.Info("system finalized", "model", sys.Name(), "sites", sys.NumSites(),
				"orbitals", sys.NumOrbitals(), "leads", sys.NumLeads())

			an, err := sc.BuildAnalysis()
			if err != nil {
				return err
			}
			if err := an.Setup(sys); err != nil {
				return fmt.Errorf("analysis setup failed: %w", err)
			}

			start := time.Now()
			if err := an.Execute(); err != nil {
				return fmt.Errorf("analysis execution failed: %w", err)
			}
			slog.Info("analysis completed", "kind", sc.Analysis.Kind, "elapsed", time.Since(start))

			if printMatrix {
				sys.GetMatrix().PrintSystem(cmd.OutOrStdout())
			}

			out := cmd.OutOrStdout()
			printHeading(out, sc.Title)
			printResults(out, sc.SweepKey(), an.Columns(), an.GetResults())
			printSummary(out, sys, an)

			return saveRun(cmd, sc, an)
		},
	}
	cmd.Flags().Bool("print-matrix", false, "Print the last stamped system matrix")
	return cmd
}

func saveRun(cmd *cobra.Command, sc *scenario.Scenario, an analysis.Analysis) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		return nil
	}

	ctx := cmd.Context()
	st, err := store.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.SaveRun(ctx, &store.Run{
		Title:    sc.Title,
		Model:    sc.Model.Kind,
		Analysis: sc.Analysis.Kind,
		Params:   sc.Params,
		Columns:  an.Columns(),
		Results:  an.GetResults(),
	})
	if err != nil {
		return err
	}
	slog.Info("run saved", "id", id, "db", dbPath)
	return nil
}

func newChannelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channels <scenario.yaml>",
		Short: "Print the open channels of every lead at one energy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			energy, _ := cmd.Flags().GetFloat64("energy")

			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			sys, err := sc.BuildSystem()
			if err != nil {
				return err
			}
			defer sys.Destroy()

			out := cmd.OutOrStdout()
			printHeading(out, fmt.Sprintf("%s: open channels at E=%g", sc.Title, energy))
			return printChannels(out, sys, energy, sc.TermParams())
		},
	}
	cmd.Flags().Float64("energy", 1, "Fermi energy")
	return cmd
}
