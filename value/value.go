// Package value implements the tagged value variant used to pass records
// into and out of the codec, per the schema-driven serializer's design
// notes: a record is a mapping from field name to a value of one of a
// closed set of kinds, carried as an explicit tag rather than inferred via
// reflection.
package value

import "github.com/subham-panja/kryonix/schema"

// Value is a tagged union over the wire type tags in package schema. Only
// the field matching Type is meaningful.
type Value struct {
	Type  schema.Type
	Int   int64
	Float float64
	Str   string
	Bool  bool
	List  []Value
}

// NewInt returns an Int-kinded Value.
func NewInt(v int64) Value { return Value{Type: schema.Int, Int: v} }

// NewFloat returns a Float-kinded Value.
func NewFloat(v float64) Value { return Value{Type: schema.Float, Float: v} }

// NewString returns a String-kinded Value.
func NewString(v string) Value { return Value{Type: schema.String, Str: v} }

// NewBool returns a Bool-kinded Value.
func NewBool(v bool) Value { return Value{Type: schema.Bool, Bool: v} }

// NewList returns a List-kinded Value wrapping items in their given order.
func NewList(items []Value) Value { return Value{Type: schema.List, List: items} }

// Record is a mapping from field name to value. A field absent from the
// map is "not present" for encode purposes: required fields that are
// absent fail encode, optional fields that are absent encode to a
// zero-length field body and are likewise absent (not merely zero-valued)
// in a decoded Record.
type Record map[string]Value
