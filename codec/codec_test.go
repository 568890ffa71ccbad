package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoneRoundTrip(t *testing.T) {
	var c None
	raw := []byte("passthrough")

	out, err := c.Compress(raw)
	require.NoError(t, err)
	require.Equal(t, raw, out)

	back, err := c.Decompress(out)
	require.NoError(t, err)
	require.Equal(t, raw, back)
}

func TestZstdRoundTrip(t *testing.T) {
	c := NewZstd()
	raw := []byte(strings.Repeat("the quick brown fox ", 500))

	compressed, err := c.Compress(raw)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(raw))

	back, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, raw, back)
}

func TestZstdRejectsGarbage(t *testing.T) {
	c := NewZstd()

	_, err := c.Decompress([]byte{0x00, 0x01, 0x02, 0x03})
	require.Error(t, err)
}

func TestBrotliRoundTrip(t *testing.T) {
	c := NewBrotli()
	raw := []byte(strings.Repeat("compress me please ", 500))

	compressed, err := c.Compress(raw)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(raw))

	back, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, raw, back)
}

func TestBrotliEmptyInput(t *testing.T) {
	c := NewBrotli()

	compressed, err := c.Compress(nil)
	require.NoError(t, err)

	back, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.Empty(t, back)
}
