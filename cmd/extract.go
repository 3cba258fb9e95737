package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"billscan/internal/config"
	"billscan/internal/logger"
	"billscan/internal/pipeline"
	"billscan/pkg/models"
)

var extractCmd = &cobra.Command{
	Use:   "extract [document]",
	Short: "Extract billing line items from a scanned document",
	Long: `Process a bill document (PDF or image, local path or URL) through the
OCR engines and print the extracted line items as JSON.

The argument is the document reference itself, or — with --payload — a
JSON file containing [{"document": "<path-or-url>"}].

OCR engines are configured through the environment; see the README for
TESSERACT_*, GOOGLE_* and POPPLER_PATH variables.`,
	Example: `  # Extract from a local scan
  billscan extract bill.pdf

  # Extract from a URL and keep the raw OCR boxes for debugging
  billscan extract https://example.com/bill.pdf --dump-ocr --dump-dir debug_ocr

  # Legacy payload format
  billscan extract request.json --payload -o result.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().Bool("payload", false, "Treat the argument as a JSON payload file")
	extractCmd.Flags().Bool("dump-ocr", false, "Write raw OCR boxes per page/engine as JSON")
	extractCmd.Flags().String("dump-dir", "", "Directory for OCR dumps (default: debug_ocr or OCR_DUMP_DIR)")
	extractCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract")

	outputPath, _ := cmd.Flags().GetString("output")
	payloadMode, _ := cmd.Flags().GetBool("payload")
	dumpOCR, _ := cmd.Flags().GetBool("dump-ocr")
	dumpDir, _ := cmd.Flags().GetString("dump-dir")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	ref := args[0]
	if payloadMode {
		var err error
		ref, err = readPayloadDocument(ref)
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	proc := pipeline.New(buildEngines(ctx, cfg, log), pipeline.Options{
		PopplerPath: cfg.PopplerPath,
		DumpOCR:     dumpOCR,
		DumpDir:     dumpDir,
	})

	log.Info().
		Str("document", ref).
		Bool("dump_ocr", dumpOCR).
		Int("timeout", timeoutSecs).
		Msg("Starting extraction")

	start := time.Now()
	data, err := proc.ProcessDocument(ctx, ref)
	if err != nil {
		log.Error().Err(err).Str("document", ref).Msg("Extraction failed")
		return err
	}

	log.Info().
		Dur("duration", time.Since(start)).
		Int("pages", len(data.PagewiseLineItems)).
		Int("items", data.TotalItemCount).
		Float64("reconciled_amount", data.ReconciledAmount).
		Msg("Extraction completed")

	// Two-element result array: the echoed document reference, then the
	// extraction envelope.
	result := []any{
		map[string]string{"document": ref},
		models.ExtractionResponse{IsSuccess: true, Data: data},
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, out, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		log.Info().Str("output_file", outputPath).Int("bytes", len(out)).Msg("Result written")
		return nil
	}

	fmt.Println(string(out))
	return nil
}

// readPayloadDocument pulls the document reference out of the legacy
// payload format: a JSON array whose first element has a "document" key.
func readPayloadDocument(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read payload file: %w", err)
	}

	var payload []models.DocumentRequest
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("failed to parse payload file: %w", err)
	}
	if len(payload) == 0 || strings.TrimSpace(payload[0].Document) == "" {
		return "", fmt.Errorf("payload must contain at least one element with a 'document' key")
	}
	return payload[0].Document, nil
}

// createContextWithTimeout creates a context with timeout and signal handling
func createContextWithTimeout(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling extraction")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
