package imageproc

import (
	"image"
	"testing"

	"photoconv/internal/settings"
)

func TestApplySpecifyResizesExactly(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 300))
	got, err := Apply(src, settings.Encode{ResizeMode: settings.ResizeSpecify, Width: 100, Height: 50})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	b := got.Bounds()
	if b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("size: got %dx%d, want 100x50", b.Dx(), b.Dy())
	}
}

func TestApplyOriginalKeepsDimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 300))
	got, err := Apply(src, settings.Encode{ResizeMode: settings.ResizeOriginal, Width: 100, Height: 50})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	b := got.Bounds()
	if b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("size: got %dx%d, want 400x300", b.Dx(), b.Dy())
	}
}

func TestApplyOriginalReturnsIndependentCopy(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	got, err := Apply(src, settings.Encode{ResizeMode: settings.ResizeOriginal})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	src.Pix[0] = 0xff
	out, ok := got.(*image.NRGBA)
	if !ok {
		t.Fatalf("unexpected image type %T", got)
	}
	if out.Pix[0] == 0xff {
		t.Error("result shares pixel storage with the source")
	}
}

func TestApplyInvalidDimensionsDegrades(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 30))
	got, err := Apply(src, settings.Encode{ResizeMode: settings.ResizeSpecify, Width: 0, Height: 50})
	if err == nil {
		t.Error("invalid dimensions should report an error")
	}
	b := got.Bounds()
	if b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("degraded result should keep source size, got %dx%d", b.Dx(), b.Dy())
	}
}
