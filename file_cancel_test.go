package photometa_test

import (
	"context"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/simonhull/photometa"
	"github.com/simonhull/photometa/internal/exiftest"
)

func createTestJPEG(t *testing.T) string {
	t.Helper()
	return writeFile(t, "test.jpg", exiftest.WithExif(encodeJPEG(t), taggedTIFF(binary.LittleEndian)))
}

// TestOpenMany_Cancellation verifies that a cancelled batch returns no records.
func TestOpenMany_Cancellation(t *testing.T) {
	paths := make([]string, 5)
	for i := range paths {
		paths[i] = createTestJPEG(t)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recs, err := photometa.OpenMany(ctx, paths)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if recs != nil {
		t.Error("expected nil records on error")
	}
}

// TestOpenMany_PartialFailure verifies that one missing file does not abort
// the batch.
func TestOpenMany_PartialFailure(t *testing.T) {
	validPath := createTestJPEG(t)
	missing := filepath.Join(t.TempDir(), "missing.jpg")

	paths := []string{validPath, missing, validPath}

	recs, err := photometa.OpenMany(context.Background(), paths, photometa.WithWorkers(2))
	if err != nil {
		t.Fatalf("OpenMany() error = %v", err)
	}
	if len(recs) != len(paths) {
		t.Fatalf("got %d records, want %d", len(recs), len(paths))
	}

	for i, rec := range recs {
		if rec.Path != paths[i] {
			t.Errorf("record %d path = %q, want %q (input order)", i, rec.Path, paths[i])
		}
	}
	if recs[1].Error != "檔案不存在: "+missing {
		t.Errorf("missing file Error = %q", recs[1].Error)
	}
	if recs[0].Error != "" || recs[2].Error != "" {
		t.Error("valid files should not carry an error")
	}
	if v, ok := recs[2].EXIF.Get("相機品牌"); !ok || v.String() != "TestCam" {
		t.Errorf("相機品牌 = %v", v)
	}
}

func TestOpenMany_Empty(t *testing.T) {
	recs, err := photometa.OpenMany(context.Background(), nil)
	if err != nil || recs != nil {
		t.Errorf("OpenMany(nil) = %v, %v", recs, err)
	}
}

func TestOpenMany_InvalidOptions(t *testing.T) {
	_, err := photometa.OpenMany(context.Background(), []string{"a.jpg"}, photometa.WithEncodings("klingon"))
	if err == nil {
		t.Error("OpenMany() should reject an unknown encoding")
	}
}

func TestOpenContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := photometa.OpenContext(ctx, createTestJPEG(t)); err == nil {
		t.Error("expected error from cancelled context")
	}
}
