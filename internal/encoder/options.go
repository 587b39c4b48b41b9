package encoder

import (
	"fmt"

	"photoconv/internal/settings"
)

// Fixed effort policy: WebP always uses the slowest, best-compressing
// method; AVIF uses a middle speed (0 = slowest on avifenc's 0-10 scale).
const (
	webpMethod = 6
	avifSpeed  = 5
)

// Options is the resolved, format-specific parameterization of one encode.
type Options struct {
	Lossless   bool
	Quality    int  // meaningful only when HasQuality
	HasQuality bool // WebP omits quality in lossless mode
	Effort     int  // cwebp -m / avifenc --speed
}

// BuildOptions resolves an encode policy into codec options.
//
// WebP carries a quality only in lossy mode. AVIF always carries one:
// its codec has no separate lossless switch, so 100 stands in for it.
func BuildOptions(format string, s settings.Encode) (Options, error) {
	switch format {
	case "webp":
		opts := Options{Lossless: s.Lossless, Effort: webpMethod}
		if !s.Lossless {
			opts.Quality = s.Quality
			opts.HasQuality = true
		}
		return opts, nil
	case "avif":
		opts := Options{HasQuality: true, Effort: avifSpeed}
		if s.Lossless {
			opts.Quality = 100
		} else {
			opts.Quality = s.Quality
		}
		return opts, nil
	default:
		return Options{}, fmt.Errorf("unknown format %q", format)
	}
}
