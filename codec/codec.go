// Package codec adapts compression libraries to the serializer's
// compress(bytes) -> bytes / decompress(bytes) -> bytes contract. The
// generic codec and the specialized encoder both treat these as black
// boxes: neither depends on anything zstd- or brotli-specific.
package codec

// Coder compresses and decompresses a single field or list body. A Coder
// implementation must be safe for concurrent use: the Codec instance that
// owns it is shared across goroutines for the lifetime of the process.
type Coder interface {
	Compress(raw []byte) ([]byte, error)
	Decompress(raw []byte) ([]byte, error)
}

// None is the identity Coder, used for schema.CodecNone.
type None struct{}

func (None) Compress(raw []byte) ([]byte, error)   { return raw, nil }
func (None) Decompress(raw []byte) ([]byte, error) { return raw, nil }
