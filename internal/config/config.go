package config

import (
	"os"
	"strconv"

	"billscan/internal/logger"
)

// Config holds all environment-driven settings. Validation is
// deliberately soft: a missing cloud credential disables that OCR
// engine instead of failing startup, and the pipeline continues with
// whatever engines can run.
type Config struct {
	// Tesseract Configuration
	TesseractEnabled bool
	TesseractLang    string

	// Google Cloud Configuration
	GoogleVisionEnabled   bool
	GoogleCloudProject    string
	GoogleCloudLocation   string
	DocumentAIProcessorID string
	DocumentAIVersion     string

	// Document loading
	PopplerPath string
	OCRDumpDir  string

	// HTTP server
	ServerAddr string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	config := &Config{
		TesseractEnabled:      getEnvBool("TESSERACT_ENABLED", true),
		TesseractLang:         getEnv("TESSERACT_LANG", "eng"),
		GoogleVisionEnabled:   getEnvBool("GOOGLE_VISION_ENABLED", false),
		GoogleCloudProject:    getEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleCloudLocation:   getEnv("GOOGLE_CLOUD_LOCATION", "us"),
		DocumentAIProcessorID: getEnv("DOCUMENT_AI_PROCESSOR_ID", ""),
		DocumentAIVersion:     getEnv("DOCUMENT_AI_PROCESSOR_VERSION", ""),
		PopplerPath:           getEnv("POPPLER_PATH", ""),
		OCRDumpDir:            getEnv("OCR_DUMP_DIR", ""),
		ServerAddr:            getEnv("SERVER_ADDR", ":8000"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:         getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:             getEnv("LOG_OUTPUT", "stdout"),
	}

	return config, nil
}

// HasGoogleCredentials reports whether any Google credential source is
// configured in the environment.
func (c *Config) HasGoogleCredentials() bool {
	return os.Getenv("GOOGLE_CREDENTIALS") != "" || os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != ""
}

// GetLoggerConfig returns a logger configuration from the main config.
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
