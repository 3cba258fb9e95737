// Package server exposes the extraction pipeline over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"billscan/internal/logger"
	"billscan/internal/pipeline"
	"billscan/pkg/models"
)

// New builds the gin router: permissive CORS (the verification UI is
// served from arbitrary origins), request timing middleware, and the
// extraction routes.
func New(proc *pipeline.Processor) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(requestLogger())

	s := &server{proc: proc}

	router.GET("/", s.root)
	router.GET("/health", s.health)
	router.POST("/extract-bill-data", s.extractBillData)

	return router
}

type server struct {
	proc *pipeline.Processor
}

// extractBillData extracts line items from a bill document referenced
// by URL or local path. Extraction failures are reported in-band with
// is_success=false; only malformed requests get a 4xx.
func (s *server) extractBillData(c *gin.Context) {
	log := logger.WithComponent("api")

	var req models.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractionResponse{
			IsSuccess: false,
			Error:     "request body must contain a 'document' key",
		})
		return
	}

	log.Info().Str("document", req.Document).Msg("Processing extraction request")

	start := time.Now()
	data, err := s.proc.ProcessDocument(c.Request.Context(), req.Document)
	if err != nil {
		log.Error().Err(err).Str("document", req.Document).Msg("Extraction failed")
		c.JSON(http.StatusOK, models.ExtractionResponse{
			IsSuccess: false,
			Error:     err.Error(),
		})
		return
	}

	log.Info().
		Dur("duration", time.Since(start)).
		Int("items", data.TotalItemCount).
		Float64("reconciled_amount", data.ReconciledAmount).
		Msg("Extraction successful")

	c.JSON(http.StatusOK, models.ExtractionResponse{
		IsSuccess: true,
		Data:      data,
	})
}

func (s *server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "billscan extraction API is running",
		"endpoints": gin.H{
			"extract": "POST /extract-bill-data",
		},
	})
}

func (s *server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// requestLogger logs method, path, status and latency for every request.
func requestLogger() gin.HandlerFunc {
	log := logger.WithComponent("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request completed")
	}
}
