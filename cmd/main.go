package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-transport/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "transport",
		Short: "Quantum transport through tight-binding lattices",
		Long: `transport builds tight-binding scattering regions with semi-infinite
leads from YAML scenarios and computes transmissions, conductances and
four-terminal resistances.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			slog.SetDefault(logging.NewLogger(level, os.Stderr))
		},
	}

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (info, debug, trace, warn, error)")
	rootCmd.PersistentFlags().String("db", "", "SQLite results database (runs are saved when set)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newChannelsCmd(),
		newRunsCmd(),
		newShowCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "transport version %s\n", version)
		},
	}
}
