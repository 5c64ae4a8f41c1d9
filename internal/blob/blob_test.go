package blob

import (
	"context"
	"testing"

	"restaurantcore/internal/blob/core"
	"restaurantcore/internal/infra/blob/s3"
)

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()
	fsStore, err := Open(ctx, Config{FSRoot: t.TempDir()})
	if err != nil || fsStore.Driver() != core.DriverFilesystem {
		t.Fatalf("default driver: %v %v", err, fsStore)
	}
	mem, err := Open(ctx, Config{Driver: core.DriverMemory})
	if err != nil || mem.Driver() != core.DriverMemory {
		t.Fatalf("memory driver: %v", err)
	}
	s3Store, err := Open(ctx, Config{Driver: core.DriverS3, S3: s3.Config{Bucket: "b", AccessKeyID: "k", SecretAccessKey: "s"}})
	if err != nil || s3Store.Driver() != core.DriverS3 {
		t.Fatalf("s3 driver: %v", err)
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, Config{Driver: "ftp"}); err == nil {
		t.Fatalf("expected unknown driver error")
	}
	if _, err := Open(ctx, Config{Driver: core.DriverS3}); err == nil {
		t.Fatalf("expected missing bucket error")
	}
}
