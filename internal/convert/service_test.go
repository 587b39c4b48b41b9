package convert

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"photoconv/internal/encoder"
	"photoconv/internal/settings"
)

type stubEncoder struct {
	format    string
	available bool
}

func (e *stubEncoder) Format() string    { return e.format }
func (e *stubEncoder) Extension() string { return e.format }
func (e *stubEncoder) Available() bool   { return e.available }

func (e *stubEncoder) Encode(img image.Image, opts encoder.Options) ([]byte, error) {
	b := img.Bounds()
	return []byte(fmt.Sprintf("%s:%dx%d", e.format, b.Dx(), b.Dy())), nil
}

func newTestService(encs ...encoder.Encoder) *Service {
	reg := encoder.NewRegistry()
	for _, e := range encs {
		reg.Register(e)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(reg, logger, nil)
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 12, 9))); err != nil {
		t.Fatal(err)
	}
}

func TestConvertOne(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	src := filepath.Join(srcDir, "photo.png")
	writePNG(t, src)

	svc := newTestService(&stubEncoder{format: "webp", available: true})
	out, err := svc.ConvertOne(context.Background(), src, outDir, "webp", settings.Defaults().WebP)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if out != filepath.Join(outDir, "photo.webp") {
		t.Errorf("output path: got %q", out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestConvertOnePrerequisites(t *testing.T) {
	svc := newTestService(&stubEncoder{format: "webp", available: true})
	enc := settings.Defaults().WebP
	ctx := context.Background()

	if _, err := svc.ConvertOne(ctx, "", "/out", "webp", enc); !errors.Is(err, ErrNoSource) {
		t.Errorf("missing source: got %v", err)
	}
	if _, err := svc.ConvertOne(ctx, "/in/a.png", "", "webp", enc); !errors.Is(err, ErrNoOutputDir) {
		t.Errorf("missing output dir: got %v", err)
	}
	if _, err := svc.ConvertOne(ctx, "/in/a.png", "/out", "jxl", enc); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestConvertOneCodecUnavailable(t *testing.T) {
	svc := newTestService(&stubEncoder{format: "avif", available: false})
	_, err := svc.ConvertOne(context.Background(), "/in/a.png", "/out", "avif", settings.Defaults().AVIF)
	if !errors.Is(err, ErrCodecUnavailable) {
		t.Errorf("got %v, want ErrCodecUnavailable", err)
	}
}

func TestConvertOneDecodeErrorSurfaces(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "bad.png")
	if err := os.WriteFile(src, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := newTestService(&stubEncoder{format: "webp", available: true})
	if _, err := svc.ConvertOne(context.Background(), src, t.TempDir(), "webp", settings.Defaults().WebP); err == nil {
		t.Error("decode failure should surface in single-file mode")
	}
}

func TestConvertBatch(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writePNG(t, filepath.Join(srcDir, "one.png"))
	writePNG(t, filepath.Join(srcDir, "two.png"))

	svc := newTestService(&stubEncoder{format: "webp", available: true})
	res, err := svc.ConvertBatch(context.Background(), srcDir, outDir, "webp", settings.Defaults().WebP)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if res.Successes != 2 || res.Failures != 0 {
		t.Errorf("tally: got %d/%d", res.Successes, res.Failures)
	}
}

func TestConvertBatchEmptyFolder(t *testing.T) {
	svc := newTestService(&stubEncoder{format: "webp", available: true})
	_, err := svc.ConvertBatch(context.Background(), t.TempDir(), t.TempDir(), "webp", settings.Defaults().WebP)
	if !errors.Is(err, ErrNothingToConvert) {
		t.Errorf("got %v, want ErrNothingToConvert", err)
	}
}

func TestConvertBatchUnreadableFolder(t *testing.T) {
	svc := newTestService(&stubEncoder{format: "webp", available: true})
	_, err := svc.ConvertBatch(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir(), "webp", settings.Defaults().WebP)
	if err == nil || errors.Is(err, ErrNothingToConvert) {
		t.Errorf("unreadable folder must be distinct from empty: got %v", err)
	}
}

func TestConvertBatchPrerequisites(t *testing.T) {
	svc := newTestService(&stubEncoder{format: "webp", available: true})
	enc := settings.Defaults().WebP
	ctx := context.Background()

	if _, err := svc.ConvertBatch(ctx, "", "/out", "webp", enc); !errors.Is(err, ErrNoBatchFolder) {
		t.Errorf("missing folder: got %v", err)
	}
	if _, err := svc.ConvertBatch(ctx, "/in", "", "webp", enc); !errors.Is(err, ErrNoOutputDir) {
		t.Errorf("missing output dir: got %v", err)
	}
}
