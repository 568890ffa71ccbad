// Package encoder implements the schema-bound generic codec: the
// header, per-field framing, per-field codec application, and the list
// sub-format that together make up the wire format.
package encoder

import (
	"github.com/subham-panja/kryonix/codec"
	"github.com/subham-panja/kryonix/schema"
)

// Codec is the generic codec instance: it pre-builds its compressor
// lookup table once at construction and is then immutable and safe to
// share across goroutines and schemas for the lifetime of the process.
type Codec struct {
	coders map[schema.Codec]codec.Coder
}

// New constructs a Codec with the default compression bindings (zstd and
// brotli at their library defaults).
func New() *Codec {
	return &Codec{
		coders: map[schema.Codec]codec.Coder{
			schema.CodecNone:   codec.None{},
			schema.CodecZSTD:   codec.NewZstd(),
			schema.CodecBrotli: codec.NewBrotli(),
		},
	}
}

// WithCoders builds a Codec from a caller-supplied compressor table,
// overriding the defaults. Useful for tests that want a deterministic or
// failing Coder in place of the real compression libraries.
func WithCoders(coders map[schema.Codec]codec.Coder) *Codec {
	return &Codec{coders: coders}
}
