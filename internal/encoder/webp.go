package encoder

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
)

// Atomic counter for unique temp file names across goroutines.
var tempCounter atomic.Int64

// WebPEncoder encodes images to WebP by shelling out to cwebp.
// This approach avoids CGO while still producing optimized WebP.
// Install: brew install webp / apt install webp
type WebPEncoder struct {
	once      sync.Once
	available bool
	cwebpPath string
}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }

func (e *WebPEncoder) Available() bool {
	e.once.Do(func() {
		path, err := exec.LookPath("cwebp")
		if err == nil {
			e.available = true
			e.cwebpPath = path
		}
	})
	return e.available
}

func (e *WebPEncoder) Encode(img image.Image, opts Options) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("cwebp not found in PATH; install with: brew install webp")
	}

	srcPath, dstPath, cleanup, err := writeTempPNG(img, "webp")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := []string{
		"-m", fmt.Sprintf("%d", opts.Effort),
		"-mt",
		"-quiet",
	}
	if opts.Lossless {
		args = append(args, "-lossless")
	} else if opts.HasQuality {
		args = append(args, "-q", fmt.Sprintf("%d", opts.Quality))
	}
	args = append(args, srcPath, "-o", dstPath)

	cmd := exec.Command(e.cwebpPath, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("cwebp: %w: %s", err, string(out))
	}

	return os.ReadFile(dstPath)
}

// writeTempPNG bridges an in-memory image to the external codecs, which
// read files. Returns the source PNG path, an empty destination path, and
// a cleanup func removing both.
func writeTempPNG(img image.Image, ext string) (srcPath, dstPath string, cleanup func(), err error) {
	id := tempCounter.Add(1)
	srcFile, err := os.CreateTemp("", fmt.Sprintf("photoconv_src_%d_*.png", id))
	if err != nil {
		return "", "", nil, fmt.Errorf("create temp: %w", err)
	}
	srcPath = srcFile.Name()
	dstFile, err := os.CreateTemp("", fmt.Sprintf("photoconv_dst_%d_*.%s", id, ext))
	if err != nil {
		srcFile.Close()
		os.Remove(srcPath)
		return "", "", nil, fmt.Errorf("create temp: %w", err)
	}
	dstPath = dstFile.Name()
	dstFile.Close()
	cleanup = func() {
		os.Remove(srcPath)
		os.Remove(dstPath)
	}

	if err := png.Encode(srcFile, img); err != nil {
		srcFile.Close()
		cleanup()
		return "", "", nil, fmt.Errorf("encode temp png: %w", err)
	}
	srcFile.Close()
	return srcPath, dstPath, cleanup, nil
}
