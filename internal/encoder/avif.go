package encoder

import (
	"fmt"
	"image"
	"os"
	"os/exec"
	"sync"
)

// AVIFEncoder encodes images to AVIF by shelling out to avifenc.
// Install: brew install libavif / apt install libavif-bin
type AVIFEncoder struct {
	once        sync.Once
	available   bool
	avifencPath string
}

func (e *AVIFEncoder) Format() string    { return "avif" }
func (e *AVIFEncoder) Extension() string { return "avif" }

func (e *AVIFEncoder) Available() bool {
	e.once.Do(func() {
		path, err := exec.LookPath("avifenc")
		if err == nil {
			e.available = true
			e.avifencPath = path
		}
	})
	return e.available
}

func (e *AVIFEncoder) Encode(img image.Image, opts Options) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("avifenc not found in PATH; install with: brew install libavif")
	}

	srcPath, dstPath, cleanup, err := writeTempPNG(img, "avif")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	// avifenc -q shares the 0-100 scale of the settings quality; 100 is
	// the codec's lossless proxy.
	cmd := exec.Command(e.avifencPath,
		"-q", fmt.Sprintf("%d", opts.Quality),
		"--speed", fmt.Sprintf("%d", opts.Effort),
		"-j", "all",
		srcPath,
		dstPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("avifenc: %w: %s", err, string(out))
	}

	return os.ReadFile(dstPath)
}
