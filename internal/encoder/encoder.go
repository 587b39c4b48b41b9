// Package encoder maps encode settings onto format-specific codec options
// and drives the external WebP/AVIF codecs.
package encoder

import (
	"image"
)

// Encoder encodes an image to one output format.
type Encoder interface {
	// Format returns the output format name ("webp" or "avif").
	Format() string

	// Encode converts the image to bytes with the given resolved options.
	Encode(img image.Image, opts Options) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	// External encoders (cwebp, avifenc) may not be installed.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}
