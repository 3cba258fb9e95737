package cmd

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"billscan/internal/config"
	"billscan/internal/logger"
	"billscan/internal/pipeline"
	"billscan/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the extraction HTTP API",
	Long: `Start the HTTP API exposing the extraction pipeline.

Routes:
  POST /extract-bill-data  extract line items from a document reference
  GET  /health             liveness probe
  GET  /                   service info`,
	Example: `  # Listen on the configured address (SERVER_ADDR, default :8000)
  billscan serve

  # Listen on an explicit address
  billscan serve --addr :9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (overrides SERVER_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.ServerAddr
	}

	gin.SetMode(gin.ReleaseMode)

	proc := pipeline.New(buildEngines(context.Background(), cfg, log), pipeline.Options{
		PopplerPath: cfg.PopplerPath,
		DumpOCR:     cfg.OCRDumpDir != "",
		DumpDir:     cfg.OCRDumpDir,
	})

	router := server.New(proc)

	log.Info().Str("addr", addr).Msg("Starting extraction API")
	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("HTTP server stopped")
		return err
	}
	return nil
}
