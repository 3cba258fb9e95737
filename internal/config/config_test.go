package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"TESSERACT_ENABLED", "TESSERACT_LANG", "GOOGLE_VISION_ENABLED", "SERVER_ADDR", "GOOGLE_CLOUD_LOCATION"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.TesseractEnabled {
		t.Error("tesseract should be enabled by default")
	}
	if cfg.TesseractLang != "eng" {
		t.Errorf("tesseract lang = %q, want eng", cfg.TesseractLang)
	}
	if cfg.GoogleVisionEnabled {
		t.Error("google vision should be disabled by default")
	}
	if cfg.ServerAddr != ":8000" {
		t.Errorf("server addr = %q, want :8000", cfg.ServerAddr)
	}
	if cfg.GoogleCloudLocation != "us" {
		t.Errorf("google cloud location = %q, want us", cfg.GoogleCloudLocation)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TESSERACT_ENABLED", "false")
	t.Setenv("GOOGLE_VISION_ENABLED", "true")
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("POPPLER_PATH", "/opt/poppler/bin")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TesseractEnabled {
		t.Error("tesseract should be disabled")
	}
	if !cfg.GoogleVisionEnabled {
		t.Error("google vision should be enabled")
	}
	if cfg.ServerAddr != ":9090" {
		t.Errorf("server addr = %q, want :9090", cfg.ServerAddr)
	}
	if cfg.PopplerPath != "/opt/poppler/bin" {
		t.Errorf("poppler path = %q, want /opt/poppler/bin", cfg.PopplerPath)
	}
	if cfg.GetLoggerConfig().Level != "debug" {
		t.Errorf("logger level = %q, want debug", cfg.GetLoggerConfig().Level)
	}
}

func TestGetEnvBoolInvalidValue(t *testing.T) {
	t.Setenv("TESSERACT_ENABLED", "not-a-bool")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.TesseractEnabled {
		t.Error("invalid boolean should fall back to the default")
	}
}

func TestHasGoogleCredentials(t *testing.T) {
	t.Setenv("GOOGLE_CREDENTIALS", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	cfg, _ := Load()
	if cfg.HasGoogleCredentials() {
		t.Error("no credentials configured, HasGoogleCredentials = true")
	}

	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/sa.json")
	if !cfg.HasGoogleCredentials() {
		t.Error("GOOGLE_APPLICATION_CREDENTIALS set, HasGoogleCredentials = false")
	}
}
