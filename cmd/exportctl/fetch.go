package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"exportbridge/internal/config"
	"exportbridge/internal/domain"
	"exportbridge/internal/mapper"
	"exportbridge/internal/port"
	"exportbridge/internal/rossum"
	"exportbridge/internal/service"
)

func newFetchCmd() *cobra.Command {
	var queueID, annotationID, out, format string
	var convert bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch an annotation export from Rossum using the configured credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			exportFormat := domain.ExportFormat(format)
			switch exportFormat {
			case domain.ExportFormatXML:
			case domain.ExportFormatJSON, domain.ExportFormatCSV, domain.ExportFormatXLSX:
				if convert {
					return fmt.Errorf("--convert needs --format %s", domain.ExportFormatXML)
				}
			default:
				return fmt.Errorf("unsupported export format: %s", format)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			fetcher := service.NewExportFetcher(rossum.NewClient(&cfg.Rossum))
			raw, err := fetcher.Fetch(cmd.Context(), port.ExportRequest{
				QueueID:      queueID,
				AnnotationID: annotationID,
				Format:       exportFormat,
			})
			if err != nil {
				return err
			}

			if convert {
				if raw, err = mapper.Convert(raw); err != nil {
					return err
				}
			}
			return writeOutput(cmd, out, raw)
		},
	}

	cmd.Flags().StringVar(&queueID, "queue", "", "Rossum queue ID")
	cmd.Flags().StringVar(&annotationID, "annotation", "", "Rossum annotation ID")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", string(domain.ExportFormatXML), "Export format: xml, json, csv or xlsx")
	cmd.Flags().BoolVar(&convert, "convert", false, "Convert the export before writing it")
	_ = cmd.MarkFlagRequired("queue")
	_ = cmd.MarkFlagRequired("annotation")
	return cmd
}
