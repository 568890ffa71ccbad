package encoder

import (
	"fmt"

	"github.com/subham-panja/kryonix/internal/wire"
	"github.com/subham-panja/kryonix/schema"
	"github.com/subham-panja/kryonix/value"
)

// EncodeField produces the complete on-wire field frame (type tag,
// length, body) for one field of a record.
// It is exported so the specialized encoder generator can call the exact
// same routine for fields it does not fuse into a contiguous pack
// (strings, lists, and compressed primitives) — the byte-identity
// property between the generic and specialized encoders holds by
// construction for every field that takes this path.
func (c *Codec) EncodeField(field schema.Field, rec value.Record) ([]byte, error) {
	v, present := rec[field.Name]

	if !present {
		if !field.Optional {
			return nil, fmt.Errorf("%w: %q", ErrMissingField, field.Name)
		}

		w := wire.NewWriter(wire.FrameHeaderLen)
		w.WriteUint16(uint16(field.Type))
		w.WriteUint32(0)
		return w.Bytes(), nil
	}

	if v.Type != field.Type {
		return nil, fmt.Errorf("%w: field %q declared %s, got %s", ErrTypeMismatch, field.Name, field.Type, v.Type)
	}

	raw, err := encodePrimitiveBody(v)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field.Name, err)
	}

	coder, ok := c.coders[field.Codec]
	if !ok {
		return nil, fmt.Errorf("%w: field %q has codec %d", ErrUnknownCodec, field.Name, uint16(field.Codec))
	}

	encoded, err := coder.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %v", ErrCodecFailure, field.Name, err)
	}

	if len(encoded) > maxBodyLen {
		return nil, fmt.Errorf("%w: field %q encoded body is %d bytes", ErrValueTooLarge, field.Name, len(encoded))
	}

	w := wire.NewWriter(wire.FrameHeaderLen + len(encoded))
	w.WriteUint16(uint16(field.Type))
	w.WriteUint32(uint32(len(encoded)))
	w.WriteBytes(encoded)
	return w.Bytes(), nil
}
