package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"billscan/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "billscan",
	Short: "billscan - extract structured line items from scanned bills",
	Long: `billscan converts scanned or photographed invoices and medical bills
into structured billing line items (name, quantity, rate, amount).

Documents are rasterized per page, run through the configured OCR
engines, and the resulting word boxes are reconstructed into table rows
and columns by a layout-aware extractor that tolerates missing headers
and OCR-garbled text.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("billscan executed")

		fmt.Println("Welcome to billscan!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
