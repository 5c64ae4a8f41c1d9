package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recorder struct{ msg string }

func (r *recorder) Fatalf(format string, _ ...any) { r.msg = format }

func TestPredicates(t *testing.T) {
	cases := []struct {
		name string
		pred func(string) bool
		path string
		want bool
	}{
		{"internal", InternalImportForbidden, "restaurantcore/internal/core", true},
		{"pkg is public", InternalImportForbidden, "restaurantcore/pkg/domain", false},
		{"infra", InfraImportForbidden, "restaurantcore/internal/infra/persistence/sqlite", true},
		{"events", InfraImportForbidden, "restaurantcore/internal/events/kafka", true},
		{"analytics is not infra", InfraImportForbidden, "restaurantcore/internal/analytics", false},
		{"stdlib", ThirdPartyImportForbidden(), "encoding/json", false},
		{"module", ThirdPartyImportForbidden(), "restaurantcore/pkg/domain", false},
		{"third party", ThirdPartyImportForbidden(), "github.com/IBM/sarama", true},
		{"allowed", ThirdPartyImportForbidden("github.com/lucsky/cuid"), "github.com/lucsky/cuid", false},
		{"combined", Any(InfraImportForbidden, ThirdPartyImportForbidden()), "github.com/spf13/viper", true},
	}
	for _, tc := range cases {
		if got := tc.pred(tc.path); got != tc.want {
			t.Fatalf("%s: pred(%q) = %v, want %v", tc.name, tc.path, got, tc.want)
		}
	}
}

func TestDirectImportViolations(t *testing.T) {
	dir := t.TempDir()
	src := "package x\n\nimport (\n\t\"fmt\"\n\t\"github.com/IBM/sarama\"\n)\n\nvar _ = fmt.Sprint\nvar _ sarama.Config\n"
	if err := os.WriteFile(filepath.Join(dir, "x.go"), []byte(src), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "x_test.go"), []byte("package x\n\nimport _ \"github.com/spf13/viper\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	viols, err := directImportViolations(dir, ThirdPartyImportForbidden())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(viols) != 1 || !strings.HasPrefix(viols[0], "github.com/IBM/sarama") {
		t.Fatalf("unexpected violations %v", viols)
	}

	var r recorder
	failIfDirectViolations(&r, "no brokers", viols)
	if r.msg == "" {
		t.Fatalf("expected failure to be reported")
	}
	r = recorder{}
	failIfDirectViolations(&r, "none", nil)
	if r.msg != "" {
		t.Fatalf("unexpected failure %q", r.msg)
	}
}
