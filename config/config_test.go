package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`database_path: /var/lib/ernie/ernie.db`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.DOIPrefix != "10.5880" {
		t.Errorf("Expected default DOI prefix, got %q", cfg.DOIPrefix)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level, got %q", cfg.LogLevel)
	}
	if cfg.DatabasePath != "/var/lib/ernie/ernie.db" {
		t.Errorf("Expected database path kept, got %q", cfg.DatabasePath)
	}
}

func TestParseExpandsEnvironment(t *testing.T) {
	t.Setenv("ERNIE_DATA", "/srv/ernie")

	cfg, err := Parse([]byte(`database_path: ${ERNIE_DATA}/ernie.db`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.DatabasePath != "/srv/ernie/ernie.db" {
		t.Errorf("Expected env expansion, got %q", cfg.DatabasePath)
	}
}

func TestParseFullConfig(t *testing.T) {
	cfg, err := Parse([]byte(`
doi_prefix: "10.14470"
log_level: debug
ror_labels_path: /etc/ernie/ror-labels.yaml
default_publisher:
  name: GFZ Data Services
  identifier: https://www.re3data.org/repository/r3d100012335
  identifier_scheme: re3data
  scheme_uri: https://re3data.org
  language: en
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.DOIPrefix != "10.14470" {
		t.Errorf("Unexpected prefix: %q", cfg.DOIPrefix)
	}
	if cfg.DefaultPublisher.Name != "GFZ Data Services" || cfg.DefaultPublisher.IdentifierScheme != "re3data" {
		t.Errorf("Unexpected default publisher: %+v", cfg.DefaultPublisher)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	if _, err := Parse([]byte(`doi_prefix: ""`)); err == nil {
		t.Error("Expected error for empty DOI prefix")
	}
	if _, err := Parse([]byte(`log_level: verbose`)); err == nil {
		t.Error("Expected error for unknown log level")
	}
	if _, err := Parse([]byte(`{not yaml`)); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ernie.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected warn, got %q", cfg.LogLevel)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
