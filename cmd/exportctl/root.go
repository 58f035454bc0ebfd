package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"exportbridge/internal/config"
	"exportbridge/internal/logger"
)

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "exportctl",
		Short: "Inspect and convert Rossum annotation exports",
		Long: `exportctl runs parts of the export pipeline outside the HTTP server.

Examples:
  exportctl convert --in export.xml --out payable.xml
  exportctl fetch --queue 123 --annotation 456 --out export.xml
  exportctl archive get --key exports/123/456/<id>-converted.xml`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if verbose {
				level = "debug"
			}
			slog.SetDefault(logger.New(config.LogConfig{Level: level}, cmd.ErrOrStderr()))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	root.AddCommand(newConvertCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newArchiveCmd())
	return root
}

// readInput reads path, or stdin when path is "" or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to path, or stdout when path is "" or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
