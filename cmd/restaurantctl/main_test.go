package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testEnv struct {
	config   string
	blobRoot string
	metrics  string
}

func newTestEnv(t *testing.T, extra string) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		config:   filepath.Join(dir, "restaurantcore.yaml"),
		blobRoot: filepath.Join(dir, "blobs"),
		metrics:  filepath.Join(dir, "metrics.prom"),
	}
	body := "storage:\n  driver: memory\n" +
		"blob:\n  driver: fs\n  fs_root: " + env.blobRoot + "\n" +
		"metrics:\n  textfile: " + env.metrics + "\n" +
		"events:\n  publisher: memory\n" +
		"log:\n  level: debug\n" + extra
	if err := os.WriteFile(env.config, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestSeedPrintsSummary(t *testing.T) {
	env := newTestEnv(t, "")
	out, errOut, code := runCLI(t, "--config", env.config, "seed", "--user", "owner@example.test")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "seeded ") || !strings.Contains(out, "seed 42") || !strings.Contains(out, "user owner@example.test") {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(errOut, "change event") {
		t.Fatalf("expected change events to be logged, got %q", errOut)
	}
	metrics, err := os.ReadFile(env.metrics)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(metrics), `restaurantcore_operations_total{operation="initialize_store",status="success"} 1`) {
		t.Fatalf("unexpected metrics %s", metrics)
	}
}

func TestStockAndTables(t *testing.T) {
	env := newTestEnv(t, "")
	out, errOut, code := runCLI(t, "--config", env.config, "--demo", "stock")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "ITEM") || !strings.Contains(out, "TOTAL") {
		t.Fatalf("unexpected stock output %q", out)
	}

	out, errOut, code = runCLI(t, "--config", env.config, "--demo", "stock", "--json")
	if code != 0 || !strings.Contains(out, `"total_value"`) {
		t.Fatalf("unexpected json output %d %q %s", code, out, errOut)
	}

	out, errOut, code = runCLI(t, "--config", env.config, "--demo", "tables")
	if code != 0 || !strings.Contains(out, "STATUS") {
		t.Fatalf("unexpected tables output %d %q %s", code, out, errOut)
	}
}

func TestReportFinancialExports(t *testing.T) {
	env := newTestEnv(t, "export:\n  format: csv\n")
	out, errOut, code := runCLI(t, "--config", env.config, "--demo", "report", "financial",
		"--period", "custom", "--start", "2000-01-01", "--end", "2100-01-01")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "custom 2000-01-01..2100-01-01") || !strings.Contains(out, "exported exports/financial/custom-2000-01-01-") {
		t.Fatalf("unexpected output %q", out)
	}
	matches, _ := filepath.Glob(filepath.Join(env.blobRoot, "exports", "financial", "*.csv"))
	if len(matches) != 1 {
		t.Fatalf("expected one csv artifact, got %v", matches)
	}
}

func TestReportLocationsAndQR(t *testing.T) {
	env := newTestEnv(t, "")
	out, errOut, code := runCLI(t, "--config", env.config, "--demo", "report", "locations", "--period", "weekly", "--format", "parquet")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "RANK") || !strings.Contains(out, ".parquet") {
		t.Fatalf("unexpected output %q", out)
	}

	out, errOut, code = runCLI(t, "--config", env.config, "--demo", "--trace", "qr", "--size", "128", "--progress")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "Digital menu") || !strings.Contains(out, "file://") {
		t.Fatalf("unexpected qr output %q", out)
	}
	if !strings.Contains(errOut, `"operation":"list"`) {
		t.Fatalf("expected trace spans on stderr, got %q", errOut)
	}
	pngs, _ := filepath.Glob(filepath.Join(env.blobRoot, "exports", "qr", "*.png"))
	if len(pngs) == 0 {
		t.Fatalf("expected rendered qr images")
	}
}

func TestCommandErrors(t *testing.T) {
	env := newTestEnv(t, "")
	cases := [][]string{
		{"--config", env.config, "report", "financial", "--period", "custom"},
		{"--config", env.config, "report", "financial", "--start", "yesterday"},
		{"--config", env.config, "report", "financial", "--format", "xlsx"},
		{"--config", env.config, "qr", "missing-id"},
		{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "stock"},
	}
	for _, args := range cases {
		if _, errOut, code := runCLI(t, args...); code != 1 || !strings.Contains(errOut, "error:") {
			t.Fatalf("expected failure for %v, got %d %q", args, code, errOut)
		}
	}
}
