package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"exportbridge/internal/mapper"
)

func newConvertCmd() *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a Rossum export file into an InvoiceRegisters document",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readInput(cmd, in)
			if err != nil {
				return err
			}

			reg, err := mapper.Map(doc)
			if err != nil {
				return err
			}
			converted, err := mapper.Marshal(reg)
			if err != nil {
				return err
			}

			payable := reg.Invoices.Payable
			slog.Debug("export converted", "invoice_number", payable.InvoiceNumber, "details", len(payable.Details.Detail))
			return writeOutput(cmd, out, converted)
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Rossum export XML file (default stdin)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	return cmd
}
