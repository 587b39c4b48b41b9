package encoder

import (
	"fmt"
	"strings"
)

// Registry holds the encoders for the supported output formats.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry with the WebP and AVIF encoders.
// Availability is probed lazily, on first use.
func NewRegistry() *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}
	r.Register(&WebPEncoder{})
	r.Register(&AVIFEncoder{})
	return r
}

// Register adds or replaces an encoder. Tests register fakes here.
func (r *Registry) Register(enc Encoder) {
	r.encoders[enc.Format()] = enc
}

// Get returns the encoder for the given format, or nil for unknown formats.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[strings.ToLower(format)]
}

// Available returns the format names whose codecs are ready to use.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"webp", "avif"} {
		if enc, ok := r.encoders[f]; ok && enc.Available() {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
