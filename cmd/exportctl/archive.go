package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"exportbridge/internal/config"
	s3storage "exportbridge/internal/storage/s3"
)

func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Read documents from the export archive",
	}
	cmd.AddCommand(newArchiveGetCmd())
	return cmd
}

func newArchiveGetCmd() *cobra.Command {
	var key, out string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Download an archived document by key",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.Archive.Bucket == "" {
				return errors.New("archive bucket is not configured")
			}

			store, err := s3storage.NewS3Client(&cfg.Archive)
			if err != nil {
				return fmt.Errorf("failed to initialize S3 client: %w", err)
			}

			data, err := store.Download(cmd.Context(), key)
			if err != nil {
				return err
			}
			return writeOutput(cmd, out, data)
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Object key inside the archive bucket")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
