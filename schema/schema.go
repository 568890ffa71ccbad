// Package schema describes the in-memory shape of a record: an ordered,
// named, versioned list of typed, optionally-compressed fields.
package schema

import (
	"errors"
	"fmt"
)

// Type identifies a field's primitive or compound kind. Values are frozen
// on the wire; changing them is a wire break.
type Type uint16

const (
	Int Type = 1 + iota
	Float
	String
	Bool
	List
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	case List:
		return "list"
	default:
		return fmt.Sprintf("type(%d)", uint16(t))
	}
}

// Valid reports whether t is one of the recognized type tags.
func (t Type) Valid() bool {
	switch t {
	case Int, Float, String, Bool, List:
		return true
	default:
		return false
	}
}

// Codec identifies the compression algorithm applied to a single field
// body. Values are frozen on the wire.
type Codec uint16

const (
	CodecNone Codec = iota
	CodecZSTD
	CodecBrotli
)

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecZSTD:
		return "zstd"
	case CodecBrotli:
		return "brotli"
	default:
		return fmt.Sprintf("codec(%d)", uint16(c))
	}
}

// Valid reports whether c is one of the recognized codec tags.
func (c Codec) Valid() bool {
	switch c {
	case CodecNone, CodecZSTD, CodecBrotli:
		return true
	default:
		return false
	}
}

// Field is a named, typed, optionally-compressed slot in a Schema. Name is
// used only to look the value up in a Record; it is never emitted on the
// wire.
type Field struct {
	Name     string
	Type     Type
	Codec    Codec
	Optional bool
}

// ErrDuplicateField, ErrUnknownType and ErrUnknownCodec are construction-time
// (SchemaInvalid) errors returned by New.
var (
	ErrDuplicateField = errors.New("schema: duplicate field name")
	ErrUnknownType    = errors.New("schema: unknown type tag")
	ErrUnknownCodec   = errors.New("schema: unknown codec tag")
)

// Schema is an ordered, named, versioned list of fields describing a
// record's shape. A Schema is immutable once constructed by New: the field
// list is copied in, so mutating the slice passed to New has no effect on
// the returned Schema, and nothing in this package ever mutates it again.
type Schema struct {
	Name    string
	Version uint16
	fields  []Field
}

// New validates and constructs a Schema. Field names must be unique, and
// every field's Type and Codec tag must be recognized.
func New(name string, version uint16, fields []Field) (*Schema, error) {
	seen := make(map[string]struct{}, len(fields))
	cp := make([]Field, len(fields))

	for i, f := range fields {
		if _, exists := seen[f.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		seen[f.Name] = struct{}{}

		if !f.Type.Valid() {
			return nil, fmt.Errorf("%w: field %q has type %d", ErrUnknownType, f.Name, uint16(f.Type))
		}

		if !f.Codec.Valid() {
			return nil, fmt.Errorf("%w: field %q has codec %d", ErrUnknownCodec, f.Name, uint16(f.Codec))
		}

		cp[i] = f
	}

	return &Schema{
		Name:    name,
		Version: version,
		fields:  cp,
	}, nil
}

// Fields returns the schema's fields in declared order. The returned slice
// must not be mutated by the caller.
func (s *Schema) Fields() []Field {
	return s.fields
}
