package encoder

import (
	"fmt"

	"github.com/subham-panja/kryonix/internal/wire"
	"github.com/subham-panja/kryonix/schema"
	"github.com/subham-panja/kryonix/value"
)

// Decode deserializes data according to s. The header's
// version is read but never used as a branch key: a mismatch between the
// wire version and s.Version is tolerated, and decoding continues using
// s's own field interpretation.
func (c *Codec) Decode(s *schema.Schema, data []byte) (value.Record, error) {
	r := wire.NewReader(data)

	if err := readMagic(r); err != nil {
		return nil, err
	}

	if _, err := r.ReadUint16(); err != nil {
		return nil, fmt.Errorf("%w: version", ErrTruncated)
	}

	rec := make(value.Record, len(s.Fields()))
	fields := s.Fields()

	for i, field := range fields {
		if r.Remaining() == 0 {
			if err := requireRestOptional(fields[i:]); err != nil {
				return nil, err
			}
			return rec, nil
		}

		v, absent, err := c.decodeField(r, field)
		if err != nil {
			return nil, err
		}
		if !absent {
			rec[field.Name] = v
		}
	}

	return rec, nil
}

// requireRestOptional: running out of bytes with fields still unconsumed
// is tolerated only if every remaining field is optional.
func requireRestOptional(rest []schema.Field) error {
	for _, field := range rest {
		if !field.Optional {
			return fmt.Errorf("%w: required field %q has no frame", ErrTruncated, field.Name)
		}
	}
	return nil
}

func readMagic(r *wire.Reader) error {
	got, err := r.ReadBytes(len(wire.Magic))
	if err != nil {
		return fmt.Errorf("%w: header", ErrTruncated)
	}
	for i, b := range wire.Magic {
		if got[i] != b {
			return ErrBadMagic
		}
	}
	return nil
}

// decodeField reads one field frame and returns its decoded value. The
// second return is true when the frame was a zero-length optional field,
// in which case the field should be left absent from the record.
func (c *Codec) decodeField(r *wire.Reader, field schema.Field) (value.Value, bool, error) {
	wireType, err := r.ReadUint16()
	if err != nil {
		return value.Value{}, false, fmt.Errorf("%w: field %q: type tag", ErrTruncated, field.Name)
	}

	length, err := r.ReadUint32()
	if err != nil {
		return value.Value{}, false, fmt.Errorf("%w: field %q: length", ErrTruncated, field.Name)
	}

	content, err := r.ReadBytes(int(length))
	if err != nil {
		return value.Value{}, false, fmt.Errorf("%w: field %q: body", ErrTruncated, field.Name)
	}

	if length == 0 && field.Optional {
		return value.Value{}, true, nil
	}

	if schema.Type(wireType) != field.Type {
		return value.Value{}, false, fmt.Errorf("%w: field %q declares %s on wire, schema expects %s", ErrUnknownType, field.Name, schema.Type(wireType), field.Type)
	}

	coder, ok := c.coders[field.Codec]
	if !ok {
		return value.Value{}, false, fmt.Errorf("%w: field %q has codec %d", ErrUnknownCodec, field.Name, uint16(field.Codec))
	}

	raw, err := coder.Decompress(content)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("%w: field %q: %v", ErrDecompressFailure, field.Name, err)
	}

	v, err := decodePrimitiveBody(field.Type, raw)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("field %q: %w", field.Name, err)
	}

	return v, false, nil
}
