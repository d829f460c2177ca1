package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/subtrack-dev/subtrack/internal/config"
	"github.com/subtrack-dev/subtrack/internal/store"
)

func newExportCommand() *cobra.Command {
	var configPath string
	var owner string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an owner's subscriptions as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, configPath, owner, outPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "subtrack.yaml", "path to config file")
	cmd.Flags().StringVar(&owner, "owner", "", "owner whose subscriptions to export (required)")
	_ = cmd.MarkFlagRequired("owner")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, configPath, owner, outPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := store.OpenSQLite(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	subs, err := st.List(cmd.Context(), owner)
	if err != nil {
		return fmt.Errorf("listing subscriptions: %w", err)
	}

	var out io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return store.WriteSubscriptions(out, subs)
}
