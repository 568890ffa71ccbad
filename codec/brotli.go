package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

// Brotli wraps andybalholm/brotli, which exposes only stream types
// (Writer/Reader); single-shot compression is the buffer-wrapped idiom
// that package's own tests use.
type Brotli struct {
	quality int
}

// NewBrotli builds a Brotli coder at the library's default quality.
func NewBrotli() *Brotli {
	return &Brotli{quality: brotli.DefaultCompression}
}

func (b *Brotli) Compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer

	w := brotli.NewWriterLevel(&buf, b.quality)
	if _, err := w.Write(raw); err != nil {
		return nil, fmt.Errorf("codec: brotli encode: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("codec: brotli encode: %w", err)
	}

	return buf.Bytes(), nil
}

func (b *Brotli) Decompress(raw []byte) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(raw))

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("codec: brotli decode: %w", err)
	}

	return out, nil
}
