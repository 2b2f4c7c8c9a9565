package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-transport/pkg/store"
)

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		return nil, fmt.Errorf("--db is required")
	}
	return store.Open(cmd.Context(), dbPath)
}

func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List stored runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printHeading(out, fmt.Sprintf("%d runs in %s", len(runs), st.Path()))
			for _, r := range runs {
				fmt.Fprintf(out, "%4d  %-20s %-10s %-10s %s\n", r.ID,
					r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Model, r.Analysis, r.Title)
			}
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the results of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q", args[0])
			}

			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.LoadRun(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printHeading(out, fmt.Sprintf("run %d: %s", run.ID, run.Title))
			if len(run.Columns) > 0 {
				printResults(out, run.Columns[0], run.Columns, run.Results)
			}
			return nil
		},
	}
}
