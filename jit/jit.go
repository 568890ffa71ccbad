// Package jit implements the specialized encoder: a per-schema plan,
// built once and cached, that fuses runs of adjacent
// fixed-width fields (INT, FLOAT, BOOL with no compression) into a single
// contiguous write instead of framing each one independently.
//
// The plan is a table the run loop interprets, not generated source run
// through a compiler — a cache-by-schema-name table in the same vein as
// a typical type-cache sync.Map. Every field the plan does not fuse (a
// string, a list, a compressed primitive, or a field absent from the
// record) is handed to encoder.Codec.EncodeField — the exact routine the
// generic codec itself uses — so the specialized and generic encoders are
// byte-identical by construction rather than by parallel maintenance.
package jit

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/subham-panja/kryonix/encoder"
	"github.com/subham-panja/kryonix/internal/wire"
	"github.com/subham-panja/kryonix/schema"
	"github.com/subham-panja/kryonix/value"
)

// plan is the cached, per-schema classification of which fields may be
// fused into a contiguous pack.
type plan struct {
	schema    *schema.Schema
	mergeable []bool
}

// Generator builds and caches specialized encode plans. A Generator built
// around one *encoder.Codec shares that codec's compressor table, so the
// non-fused fields it falls back on compress identically to the generic
// path. The zero value is not usable; use NewGenerator.
type Generator struct {
	codec *encoder.Codec
	cache sync.Map // schema name -> *plan
}

// NewGenerator returns a Generator that falls back to c for every field a
// plan does not fuse.
func NewGenerator(c *encoder.Codec) *Generator {
	return &Generator{codec: c}
}

// Specialize returns a function that encodes records of s the same way
// c.Encode would, fusing s's runs of fixed-width uncompressed fields. The
// plan is built once per distinct schema name and reused on every call;
// concurrent first calls for the same schema race harmlessly to build
// the same plan, and the first one to land in the cache wins.
func (g *Generator) Specialize(s *schema.Schema) (func(value.Record) ([]byte, error), error) {
	p := g.planFor(s)
	return func(rec value.Record) ([]byte, error) {
		return g.run(p, rec)
	}, nil
}

func (g *Generator) planFor(s *schema.Schema) *plan {
	if cached, ok := g.cache.Load(s.Name); ok {
		return cached.(*plan)
	}

	fields := s.Fields()
	p := &plan{schema: s, mergeable: make([]bool, len(fields))}
	fused := 0
	for i, f := range fields {
		p.mergeable[i] = isMergeable(f)
		if p.mergeable[i] {
			fused++
		}
	}

	actual, loaded := g.cache.LoadOrStore(s.Name, p)
	if !loaded {
		log.Debug().
			Str("schema", s.Name).
			Int("fields", len(fields)).
			Int("fusable", fused).
			Msg("jit: built specialization plan")
	}
	return actual.(*plan)
}

// isMergeable reports whether a field's frame has a fixed size known at
// plan-build time: fixed-width kinds with no compression applied. String
// and list bodies vary in length, and a compressed primitive's body
// length depends on the compressor, so none of those can be fused into a
// run of plain offset writes.
func isMergeable(f schema.Field) bool {
	if f.Codec != schema.CodecNone {
		return false
	}
	switch f.Type {
	case schema.Int, schema.Float, schema.Bool:
		return true
	default:
		return false
	}
}

// run executes a plan against rec. It walks fields in declared order,
// appending each present mergeable field's frame to a pending buffer and
// flushing that buffer (one append into the output) whenever it meets a
// non-mergeable field, or a mergeable field that turns out absent from
// rec. That second case is the correctness fix over a naive merge: an
// optional fixed-width field with no value present still needs its
// zero-length frame, not the fixed-width frame appendMergeableFrame
// writes, so it is framed by EncodeField instead of joining the pack
// run. Treating every absence as a flush point — rather than only
// flushing on type changes, as the Python prototype this is descended
// from did — is what keeps a record with absent optional fields
// byte-identical to the generic encoder's output.
func (g *Generator) run(p *plan, rec value.Record) ([]byte, error) {
	fields := p.schema.Fields()
	w := wire.NewWriter(wire.HeaderLen + estimateSize(fields, rec))
	w.WriteHeader(p.schema.Version)

	var pending []byte
	flush := func() {
		if len(pending) > 0 {
			w.WriteBytes(pending)
			pending = pending[:0]
		}
	}

	for i, field := range fields {
		if !p.mergeable[i] {
			flush()
			frame, err := g.codec.EncodeField(field, rec)
			if err != nil {
				return nil, err
			}
			w.WriteBytes(frame)
			continue
		}

		v, present := rec[field.Name]
		if !present {
			flush()
			frame, err := g.codec.EncodeField(field, rec)
			if err != nil {
				return nil, err
			}
			w.WriteBytes(frame)
			continue
		}

		if v.Type != field.Type {
			return nil, fmt.Errorf("%w: field %q declared %s, got %s", encoder.ErrTypeMismatch, field.Name, field.Type, v.Type)
		}

		pending = appendMergeableFrame(pending, field.Type, v)
	}
	flush()

	return w.Bytes(), nil
}

// appendMergeableFrame writes one fixed-width field's complete frame
// (type tag, length, body) to buf. This is the uncompressed body encoding
// in encoder.encodePrimitiveBody, inlined: since the field's codec is
// CodecNone, the compressed body equals the raw body, so duplicating the
// formula here (rather than routing through the compressor table) is
// exactly the specialization this package exists to make.
func appendMergeableFrame(buf []byte, t schema.Type, v value.Value) []byte {
	switch t {
	case schema.Int:
		buf = binary.BigEndian.AppendUint16(buf, uint16(schema.Int))
		buf = binary.BigEndian.AppendUint32(buf, 8)
		return binary.BigEndian.AppendUint64(buf, uint64(v.Int))

	case schema.Float:
		buf = binary.BigEndian.AppendUint16(buf, uint16(schema.Float))
		buf = binary.BigEndian.AppendUint32(buf, 8)
		return binary.BigEndian.AppendUint64(buf, math.Float64bits(v.Float))

	case schema.Bool:
		buf = binary.BigEndian.AppendUint16(buf, uint16(schema.Bool))
		buf = binary.BigEndian.AppendUint32(buf, 1)
		if v.Bool {
			return append(buf, 0x01)
		}
		return append(buf, 0x00)

	default:
		panic(fmt.Sprintf("jit: %s is not a mergeable type", t))
	}
}

// estimateSize gives the writer's initial capacity a rough pre-allocation
// hint, mirroring encoder.estimateBodySize; an under- or over-estimate
// only costs a reallocation, never correctness.
func estimateSize(fields []schema.Field, rec value.Record) int {
	size := len(fields) * wire.FrameHeaderLen

	for _, f := range fields {
		v, ok := rec[f.Name]
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
