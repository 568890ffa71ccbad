package encoder

import (
	"github.com/subham-panja/kryonix/internal/wire"
	"github.com/subham-panja/kryonix/schema"
	"github.com/subham-panja/kryonix/value"
)

// Encode serializes rec according to s. Fields are
// emitted in declared order; a missing required field or a value whose
// kind disagrees with its declared type fails the whole encode with no
// partial output.
func (c *Codec) Encode(s *schema.Schema, rec value.Record) ([]byte, error) {
	w := wire.NewWriter(wire.HeaderLen + estimateBodySize(s, rec))
	w.WriteHeader(s.Version)

	for _, field := range s.Fields() {
		frame, err := c.EncodeField(field, rec)
		if err != nil {
			return nil, err
		}
		w.WriteBytes(frame)
	}

	return w.Bytes(), nil
}

// estimateBodySize gives the writer's initial capacity a rough
// pre-allocation hint; an under- or over-estimate only costs a
// reallocation, never correctness.
func estimateBodySize(s *schema.Schema, rec value.Record) int {
	size := len(s.Fields()) * wire.FrameHeaderLen

	for _, field := range s.Fields() {
		v, ok := rec[field.Name]
		if !ok {
			continue
		}
		switch v.Type {
		case schema.Int, schema.Float:
			size += 8
		case schema.Bool:
			size += 1
		case schema.String:
			size += 4 + len(v.Str)
		case schema.List:
			size += 5 + 8*len(v.List)
		}
	}

	return size
}
