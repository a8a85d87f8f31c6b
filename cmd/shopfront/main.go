package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/shopfront/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "shopfront: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "shopfront",
		Short:         "Browse the storefront catalog from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "override config path (optional)")
	root.PersistentFlags().StringVar(&opts.PrefsPath, "prefs", "", "override prefs path (optional)")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log at debug level")

	render := &cobra.Command{
		Use:   "render [path...]",
		Short: "Render pages to stdout without the terminal UI",
		Long: `Render visits each path in order, exactly as the UI would navigate,
and prints every page once it commits. With no paths it renders "/".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Render(cmd.Context(), opts, cmd.OutOrStdout(), args)
		},
	}

	var lines int
	logs := &cobra.Command{
		Use:   "logs",
		Short: "Show recent log entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Logs(opts, cmd.OutOrStdout(), lines)
		},
	}
	logs.Flags().IntVarP(&lines, "lines", "n", 50, "number of entries to show (0 for all)")

	root.AddCommand(render, logs)
	return root
}
