package encoder

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/subham-panja/kryonix/schema"
	"github.com/subham-panja/kryonix/value"
)

func mustSchema(t *testing.T, name string, version uint16, fields []schema.Field) *schema.Schema {
	t.Helper()
	s, err := schema.New(name, version, fields)
	require.NoError(t, err)
	return s
}

func TestHeaderStability(t *testing.T) {
	s := mustSchema(t, "single-int", 1, []schema.Field{{Name: "x", Type: schema.Int}})
	c := New()

	out, err := c.Encode(s, value.Record{"x": value.NewInt(1)})
	require.NoError(t, err)

	require.Equal(t, []byte{0x41, 0x58, 0x53, 0x52, 0x00, 0x01}, out[:6])
}

func TestScenarioSingleInt(t *testing.T) {
	s := mustSchema(t, "single-int", 1, []schema.Field{{Name: "x", Type: schema.Int}})
	c := New()

	out, err := c.Encode(s, value.Record{"x": value.NewInt(1)})
	require.NoError(t, err)

	expected := []byte{
		0x41, 0x58, 0x53, 0x52, 0x00, 0x01, // header
		0x00, 0x01, 0x00, 0x00, 0x00, 0x08, // type=1, len=8
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, // value
	}
	require.Equal(t, expected, out)
}

func TestScenarioBool(t *testing.T) {
	s := mustSchema(t, "bool", 1, []schema.Field{{Name: "b", Type: schema.Bool}})
	c := New()

	out, err := c.Encode(s, value.Record{"b": value.NewBool(true)})
	require.NoError(t, err)
	require.Equal(t, byte(0x01), out[len(out)-1])

	out, err = c.Encode(s, value.Record{"b": value.NewBool(false)})
	require.NoError(t, err)
	require.Equal(t, byte(0x00), out[len(out)-1])
}

func TestScenarioEmptyString(t *testing.T) {
	s := mustSchema(t, "str", 1, []schema.Field{{Name: "s", Type: schema.String}})
	c := New()

	out, err := c.Encode(s, value.Record{"s": value.NewString("")})
	require.NoError(t, err)

	frame := out[wire_headerLen():]
	require.Equal(t, []byte{0x00, 0x03, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00}, frame)
}

func TestScenarioPackedIntList(t *testing.T) {
	s := mustSchema(t, "list", 1, []schema.Field{{Name: "xs", Type: schema.List}})
	c := New()

	rec := value.Record{"xs": value.NewList([]value.Value{value.NewInt(1), value.NewInt(2), value.NewInt(3)})}
	out, err := c.Encode(s, rec)
	require.NoError(t, err)

	body := out[wire_headerLen()+6:]
	expected := []byte{0x00, 0x00, 0x00, 0x03, 0x01}
	require.Equal(t, expected, body[:5])
	require.Len(t, body[5:], 24)
}

func TestScenarioCompressedStringRoundTrip(t *testing.T) {
	s := mustSchema(t, "bio", 1, []schema.Field{{Name: "bio", Type: schema.String, Codec: schema.CodecZSTD}})
	c := New()

	bio := strings.Repeat("a", 5000)
	out, err := c.Encode(s, value.Record{"bio": value.NewString(bio)})
	require.NoError(t, err)
	require.Less(t, len(out), len(bio)+4)

	rec, err := c.Decode(s, out)
	require.NoError(t, err)
	require.Equal(t, bio, rec["bio"].Str)
}

func TestRoundTripAllPrimitives(t *testing.T) {
	s := mustSchema(t, "all", 3, []schema.Field{
		{Name: "i", Type: schema.Int},
		{Name: "f", Type: schema.Float},
		{Name: "s", Type: schema.String},
		{Name: "b", Type: schema.Bool},
		{Name: "l", Type: schema.List},
	})
	c := New()

	rec := value.Record{
		"i": value.NewInt(-42),
		"f": value.NewFloat(3.25),
		"s": value.NewString("hello, world"),
		"b": value.NewBool(true),
		"l": value.NewList([]value.Value{value.NewString("a"), value.NewInt(1), value.NewBool(false)}),
	}

	out, err := c.Encode(s, rec)
	require.NoError(t, err)

	back, err := c.Decode(s, out)
	require.NoError(t, err)
	require.Equal(t, rec, back)
}

func TestRoundTripOptionalAbsent(t *testing.T) {
	s := mustSchema(t, "opt", 1, []schema.Field{
		{Name: "required", Type: schema.Int},
		{Name: "optional", Type: schema.String, Optional: true},
	})
	c := New()

	rec := value.Record{"required": value.NewInt(1)}
	out, err := c.Encode(s, rec)
	require.NoError(t, err)

	back, err := c.Decode(s, out)
	require.NoError(t, err)
	require.Equal(t, rec, back)
	_, present := back["optional"]
	require.False(t, present)
}

func TestBoundaryIntegerExtremes(t *testing.T) {
	s := mustSchema(t, "extremes", 1, []schema.Field{
		{Name: "max", Type: schema.Int},
		{Name: "min", Type: schema.Int},
	})
	c := New()

	rec := value.Record{
		"max": value.NewInt(math.MaxInt64),
		"min": value.NewInt(math.MinInt64),
	}

	out, err := c.Encode(s, rec)
	require.NoError(t, err)

	back, err := c.Decode(s, out)
	require.NoError(t, err)
	require.Equal(t, rec, back)
}

func TestBoundaryFloatSpecials(t *testing.T) {
	s := mustSchema(t, "floats", 1, []schema.Field{
		{Name: "posz", Type: schema.Float},
		{Name: "negz", Type: schema.Float},
		{Name: "sub", Type: schema.Float},
	})
	c := New()

	rec := value.Record{
		"posz": value.NewFloat(math.Copysign(0, 1)),
		"negz": value.NewFloat(math.Copysign(0, -1)),
		"sub":  value.NewFloat(math.SmallestNonzeroFloat64),
	}

	out, err := c.Encode(s, rec)
	require.NoError(t, err)

	back, err := c.Decode(s, out)
	require.NoError(t, err)

	require.Equal(t, math.Float64bits(rec["posz"].Float), math.Float64bits(back["posz"].Float))
	require.Equal(t, math.Float64bits(rec["negz"].Float), math.Float64bits(back["negz"].Float))
	require.Equal(t, rec["sub"].Float, back["sub"].Float)
}

func TestBoundaryEmptyList(t *testing.T) {
	s := mustSchema(t, "emptylist", 1, []schema.Field{{Name: "xs", Type: schema.List}})
	c := New()

	rec := value.Record{"xs": value.NewList(nil)}
	out, err := c.Encode(s, rec)
	require.NoError(t, err)

	back, err := c.Decode(s, out)
	require.NoError(t, err)
	require.Empty(t, back["xs"].List)
}

func TestListEncodingSelection(t *testing.T) {
	tests := []struct {
		name string
		list []value.Value
		disc byte
	}{
		{"all-int", []value.Value{value.NewInt(1), value.NewInt(2)}, 0x01},
		{"all-float", []value.Value{value.NewFloat(1), value.NewFloat(2)}, 0x02},
		{"mixed", []value.Value{value.NewInt(1), value.NewFloat(2)}, 0x00},
		{"bool-not-int", []value.Value{value.NewBool(true), value.NewBool(false)}, 0x00},
		{"empty", nil, 0x00},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := EncodeList(tc.list)
			require.NoError(t, err)
			require.Equal(t, tc.disc, encoded[4])
		})
	}
}

func TestFailureBadMagic(t *testing.T) {
	s := mustSchema(t, "x", 1, []schema.Field{{Name: "x", Type: schema.Int}})
	c := New()

	_, err := c.Decode(s, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x01})
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestFailureTruncated(t *testing.T) {
	s := mustSchema(t, "x", 1, []schema.Field{{Name: "x", Type: schema.Int}})
	c := New()

	out, err := c.Encode(s, value.Record{"x": value.NewInt(1)})
	require.NoError(t, err)

	_, err = c.Decode(s, out[:len(out)-1])
	require.ErrorIs(t, err, ErrTruncated)
}

func TestFailureMissingRequiredField(t *testing.T) {
	s := mustSchema(t, "x", 1, []schema.Field{{Name: "x", Type: schema.Int}})
	c := New()

	_, err := c.Encode(s, value.Record{})
	require.ErrorIs(t, err, ErrMissingField)
}

func TestFailureTypeMismatch(t *testing.T) {
	s := mustSchema(t, "x", 1, []schema.Field{{Name: "x", Type: schema.Int}})
	c := New()

	_, err := c.Encode(s, value.Record{"x": value.NewString("nope")})
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestDeterminism(t *testing.T) {
	s := mustSchema(t, "det", 1, []schema.Field{
		{Name: "x", Type: schema.Int},
		{Name: "s", Type: schema.String},
	})
	c := New()

	rec := value.Record{"x": value.NewInt(5), "s": value.NewString("abc")}

	a, err := c.Encode(s, rec)
	require.NoError(t, err)
	b, err := c.Encode(s, rec)
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func wire_headerLen() int { return 6 }
