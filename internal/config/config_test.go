package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"restaurantcore/internal/analytics"
	"restaurantcore/internal/core"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != core.StorageSQLite || cfg.Storage.SQLitePath != "restaurantcore.db" {
		t.Fatalf("unexpected storage %+v", cfg.Storage)
	}
	if cfg.Costing != analytics.DefaultCostingPolicy() {
		t.Fatalf("unexpected costing %+v", cfg.Costing)
	}
	if cfg.Blob.Driver != "fs" || cfg.Export.URLExpiry != 15*time.Minute || cfg.Events.Publisher != PublisherNone {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Seed.Value != 42 {
		t.Fatalf("expected default seed 42, got %d", cfg.Seed.Value)
	}
}

func TestLoadFileThenEnvironment(t *testing.T) {
	path := writeFile(t, "restaurantcore.yaml", `
storage:
  driver: postgres
  postgres_dsn: postgres://file
costing:
  labor_cost: 3
blob:
  driver: s3
  s3:
    bucket: file-bucket
    path_style: true
events:
  publisher: kafka
  kafka:
    brokers: [file:9092]
log:
  format: json
`)
	t.Setenv("RESTAURANTCORE_STORAGE_POSTGRES_DSN", "postgres://env")
	t.Setenv("RESTAURANTCORE_EVENTS_KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("RESTAURANTCORE_EXPORT_URL_EXPIRY", "1h")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != core.StoragePostgres || cfg.Storage.PostgresDSN != "postgres://env" {
		t.Fatalf("unexpected storage %+v", cfg.Storage)
	}
	if cfg.Costing.LaborCost != 3 || cfg.Costing.OverheadRate != analytics.DefaultOverheadRate {
		t.Fatalf("unexpected costing %+v", cfg.Costing)
	}
	if cfg.Blob.S3.Bucket != "file-bucket" || !cfg.Blob.S3.PathStyle {
		t.Fatalf("unexpected s3 config %+v", cfg.Blob.S3)
	}
	if got := cfg.Events.Kafka.Brokers; len(got) != 2 || got[0] != "a:9092" || got[1] != "b:9092" {
		t.Fatalf("unexpected brokers %v", got)
	}
	if cfg.Export.URLExpiry != time.Hour {
		t.Fatalf("unexpected expiry %s", cfg.Export.URLExpiry)
	}
}

func TestLoadEnvFile(t *testing.T) {
	const key = "RESTAURANTCORE_SEED_ACTIVE_USER"
	t.Cleanup(func() { _ = os.Unsetenv(key) })
	path := writeFile(t, ".env", key+"=manager@example.test\n")

	cfg, err := Load("", path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed.ActiveUser != "manager@example.test" {
		t.Fatalf("expected env file value, got %q", cfg.Seed.ActiveUser)
	}
	if _, err := Load("", filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for missing explicit env file")
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := map[string]string{
		"unknown publisher": "events:\n  publisher: carrier-pigeon\n",
		"kafka no brokers":  "events:\n  publisher: kafka\n",
		"amqp no url":       "events:\n  publisher: amqp\n",
		"bad level":         "log:\n  level: loud\n",
		"bad format":        "log:\n  format: xml\n",
		"negative costing":  "costing:\n  overhead_rate: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeFile(t, "c.yaml", body)); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "table", "t1")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"table":"t1"`) {
		t.Fatalf("unexpected log output %q", out)
	}

	buf.Reset()
	logger, err = LogConfig{}.NewLogger(&buf)
	if err != nil {
		t.Fatalf("default logger: %v", err)
	}
	logger.Info("plain")
	if !strings.Contains(buf.String(), "msg=plain") {
		t.Fatalf("expected text handler output, got %q", buf.String())
	}
}
