package encoder

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/subham-panja/kryonix/schema"
	"github.com/subham-panja/kryonix/value"
)

const maxBodyLen = math.MaxUint32

// encodePrimitiveBody produces the pre-compression body bytes for a
// single value. LIST recurses into the shared
// list sub-format (§4.4).
func encodePrimitiveBody(v value.Value) ([]byte, error) {
	switch v.Type {
	case schema.Int:
		return binary.BigEndian.AppendUint64(nil, uint64(v.Int)), nil

	case schema.Float:
		return binary.BigEndian.AppendUint64(nil, math.Float64bits(v.Float)), nil

	case schema.Bool:
		if v.Bool {
			return []byte{0x01}, nil
		}
		return []byte{0x00}, nil

	case schema.String:
		b := []byte(v.Str)
		if len(b) > maxBodyLen {
			return nil, fmt.Errorf("%w: string body is %d bytes", ErrValueTooLarge, len(b))
		}
		out := make([]byte, 0, 4+len(b))
		out = binary.BigEndian.AppendUint32(out, uint32(len(b)))
		out = append(out, b...)
		return out, nil

	case schema.List:
		return EncodeList(v.List)

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint16(v.Type))
	}
}

// decodePrimitiveBody interprets raw bytes as a value of type t.
func decodePrimitiveBody(t schema.Type, raw []byte) (value.Value, error) {
	switch t {
	case schema.Int:
		if len(raw) != 8 {
			return value.Value{}, fmt.Errorf("%w: int body is %d bytes, want 8", ErrTruncated, len(raw))
		}
		return value.NewInt(int64(binary.BigEndian.Uint64(raw))), nil

	case schema.Float:
		if len(raw) != 8 {
			return value.Value{}, fmt.Errorf("%w: float body is %d bytes, want 8", ErrTruncated, len(raw))
		}
		return value.NewFloat(math.Float64frombits(binary.BigEndian.Uint64(raw))), nil

	case schema.Bool:
		if len(raw) != 1 {
			return value.Value{}, fmt.Errorf("%w: bool body is %d bytes, want 1", ErrTruncated, len(raw))
		}
		return value.NewBool(raw[0] == 0x01), nil

	case schema.String:
		if len(raw) < 4 {
			return value.Value{}, fmt.Errorf("%w: string body shorter than its length prefix", ErrTruncated)
		}
		n := binary.BigEndian.Uint32(raw[:4])
		if uint64(n)+4 != uint64(len(raw)) {
			return value.Value{}, fmt.Errorf("%w: string length prefix %d disagrees with body size %d", ErrTruncated, n, len(raw)-4)
		}
		s := raw[4:]
		if !utf8.Valid(s) {
			return value.Value{}, ErrInvalidUTF8
		}
		return value.NewString(string(s)), nil

	case schema.List:
		items, err := DecodeList(raw)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewList(items), nil

	default:
		return value.Value{}, fmt.Errorf("%w: %d", ErrUnknownType, uint16(t))
	}
}
