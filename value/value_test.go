package value

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/subham-panja/kryonix/schema"
)

func TestConstructors(t *testing.T) {
	require.Equal(t, Value{Type: schema.Int, Int: 7}, NewInt(7))
	require.Equal(t, Value{Type: schema.Float, Float: 1.5}, NewFloat(1.5))
	require.Equal(t, Value{Type: schema.String, Str: "hi"}, NewString("hi"))
	require.Equal(t, Value{Type: schema.Bool, Bool: true}, NewBool(true))

	list := NewList([]Value{NewInt(1), NewInt(2)})
	require.Equal(t, schema.List, list.Type)
	require.Len(t, list.List, 2)
}

func TestRecordAbsenceIsKeyAbsence(t *testing.T) {
	rec := Record{"present": NewInt(0)}

	_, ok := rec["missing"]
	require.False(t, ok)

	v, ok := rec["present"]
	require.True(t, ok)
	require.Equal(t, int64(0), v.Int)
}
