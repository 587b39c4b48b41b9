// Package imageproc applies the optional resize step of an encode policy.
package imageproc

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"photoconv/internal/settings"
)

// Apply returns the image prepared for encoding according to the policy's
// resize mode. The result is always independent of img — downstream steps
// may consume it freely.
//
// When the requested dimensions are unusable the original is returned
// unresized together with a non-nil error: resize degrades, it never
// aborts a conversion. Callers log the error and continue.
func Apply(img image.Image, s settings.Encode) (image.Image, error) {
	if s.ResizeMode != settings.ResizeSpecify {
		return imaging.Clone(img), nil
	}
	if s.Width < 1 || s.Height < 1 {
		return imaging.Clone(img), fmt.Errorf("invalid resize dimensions %dx%d", s.Width, s.Height)
	}
	return imaging.Resize(img, s.Width, s.Height, imaging.Lanczos), nil
}
