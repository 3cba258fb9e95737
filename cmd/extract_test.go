package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func writePayload(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "request.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadPayloadDocument(t *testing.T) {
	path := writePayload(t, `[{"document": "bills/scan_01.pdf"}]`)

	ref, err := readPayloadDocument(path)
	if err != nil {
		t.Fatalf("readPayloadDocument failed: %v", err)
	}
	if ref != "bills/scan_01.pdf" {
		t.Errorf("document = %q, want bills/scan_01.pdf", ref)
	}
}

func TestReadPayloadDocumentInvalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"empty array", `[]`},
		{"missing key", `[{"file": "x.pdf"}]`},
		{"blank document", `[{"document": "  "}]`},
		{"not json", `document: x.pdf`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := readPayloadDocument(writePayload(t, tc.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestReadPayloadDocumentMissingFile(t *testing.T) {
	if _, err := readPayloadDocument(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected an error for missing payload file")
	}
}
