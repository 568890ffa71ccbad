package encoder

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/subham-panja/kryonix/schema"
	"github.com/subham-panja/kryonix/value"
)

// List encoding discriminators.
const (
	listEncodingGeneric     = 0x00
	listEncodingPackedInt   = 0x01
	listEncodingPackedFloat = 0x02
)

// EncodeList implements the list sub-format. It is exported
// so the specialized encoder (package jit) can share this exact routine
// rather than reimplementing the encoding heuristic.
//
// Encode heuristic, applied in order: empty -> generic; all-int ->
// packed int64; all-float -> packed float64; otherwise -> generic. This
// is a closed rule: every implementation of this format must apply it in
// this order so output is reproducible.
func EncodeList(items []value.Value) ([]byte, error) {
	if len(items) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: list has %d items", ErrValueTooLarge, len(items))
	}

	out := make([]byte, 0, 5+8*len(items))
	out = binary.BigEndian.AppendUint32(out, uint32(len(items)))

	if len(items) == 0 {
		return append(out, listEncodingGeneric), nil
	}

	if allOfType(items, schema.Int) {
		out = append(out, listEncodingPackedInt)
		for _, it := range items {
			out = binary.BigEndian.AppendUint64(out, uint64(it.Int))
		}
		return out, nil
	}

	if allOfType(items, schema.Float) {
		out = append(out, listEncodingPackedFloat)
		for _, it := range items {
			out = binary.BigEndian.AppendUint64(out, math.Float64bits(it.Float))
		}
		return out, nil
	}

	out = append(out, listEncodingGeneric)
	for _, it := range items {
		body, err := encodePrimitiveBody(it)
		if err != nil {
			return nil, err
		}
		if len(body) > maxBodyLen {
			return nil, fmt.Errorf("%w: list item body is %d bytes", ErrValueTooLarge, len(body))
		}
		out = binary.BigEndian.AppendUint16(out, uint16(it.Type))
		out = binary.BigEndian.AppendUint32(out, uint32(len(body)))
		out = append(out, body...)
	}
	return out, nil
}

func allOfType(items []value.Value, t schema.Type) bool {
	for _, it := range items {
		if it.Type != t {
			return false
		}
	}
	return true
}

// DecodeList implements the list sub-format decoder.
func DecodeList(data []byte) ([]value.Value, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("%w: list body shorter than count+discriminator", ErrListMalformed)
	}

	count := binary.BigEndian.Uint32(data[:4])
	disc := data[4]
	rest := data[5:]

	switch disc {
	case listEncodingPackedInt, listEncodingPackedFloat:
		need := uint64(count) * 8
		if uint64(len(rest)) != need {
			return nil, fmt.Errorf("%w: packed list declares %d items but has %d payload bytes", ErrListMalformed, count, len(rest))
		}

		items := make([]value.Value, count)
		for i := range items {
			bits := binary.BigEndian.Uint64(rest[i*8 : i*8+8])
			if disc == listEncodingPackedInt {
				items[i] = value.NewInt(int64(bits))
			} else {
				items[i] = value.NewFloat(math.Float64frombits(bits))
			}
		}
		return items, nil

	case listEncodingGeneric:
		items := make([]value.Value, 0, count)
		off := 0

		for i := uint32(0); i < count; i++ {
			if len(rest)-off < 6 {
				return nil, fmt.Errorf("%w: generic list item %d: header truncated", ErrListMalformed, i)
			}

			typeTag := schema.Type(binary.BigEndian.Uint16(rest[off : off+2]))
			off += 2

			length := binary.BigEndian.Uint32(rest[off : off+4])
			off += 4

			if uint64(off)+uint64(length) > uint64(len(rest)) {
				return nil, fmt.Errorf("%w: generic list item %d: body truncated", ErrListMalformed, i)
			}

			body := rest[off : off+int(length)]
			off += int(length)

			item, err := decodePrimitiveBody(typeTag, body)
			if err != nil {
				return nil, fmt.Errorf("%w: generic list item %d: %v", ErrListMalformed, i, err)
			}

			items = append(items, item)
		}

		if off != len(rest) {
			return nil, fmt.Errorf("%w: %d trailing bytes after generic list items", ErrListMalformed, len(rest)-off)
		}

		return items, nil

	default:
		return nil, fmt.Errorf("%w: unknown list discriminator %#x", ErrListMalformed, disc)
	}
}
