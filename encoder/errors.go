package encoder

import "errors"

// Encode-time errors.
var (
	ErrMissingField  = errors.New("encoder: required field not present in record")
	ErrTypeMismatch  = errors.New("encoder: value kind disagrees with declared field type")
	ErrUnknownType   = errors.New("encoder: unrecognized type tag")
	ErrUnknownCodec  = errors.New("encoder: unrecognized codec tag")
	ErrValueTooLarge = errors.New("encoder: value exceeds 2^32-1 byte limit")
	ErrCodecFailure  = errors.New("encoder: compressor rejected its input")
)

// Decode-time errors.
var (
	ErrBadMagic          = errors.New("encoder: header does not start with AXSR")
	ErrTruncated         = errors.New("encoder: buffer ended before a required field was fully read")
	ErrDecompressFailure = errors.New("encoder: decompressor rejected its input")
	ErrInvalidUTF8       = errors.New("encoder: string body is not valid UTF-8")
	ErrListMalformed     = errors.New("encoder: list count or discriminator inconsistent with remaining bytes")
)
