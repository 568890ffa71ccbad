package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Zstd wraps klauspost/compress/zstd's single-shot encode/decode idiom: a
// shared encoder and decoder built once and reused across calls via
// EncodeAll/DecodeAll, which that package documents as safe for
// concurrent use.
type Zstd struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewZstd builds a Zstd coder with the library's default compression
// level and a single-threaded encoder (field and list bodies in this
// format are small enough that parallel block compression buys nothing).
func NewZstd() *Zstd {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		// zstd.NewReader(nil) only fails on invalid options, never at
		// runtime with the zero-value options used here.
		panic(fmt.Sprintf("codec: zstd reader: %v", err))
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		panic(fmt.Sprintf("codec: zstd writer: %v", err))
	}

	return &Zstd{enc: enc, dec: dec}
}

func (z *Zstd) Compress(raw []byte) ([]byte, error) {
	return z.enc.EncodeAll(raw, make([]byte, 0, len(raw))), nil
}

func (z *Zstd) Decompress(raw []byte) ([]byte, error) {
	out, err := z.dec.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("codec: zstd decode: %w", err)
	}
	return out, nil
}
