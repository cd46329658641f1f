package mempool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeClass(t *testing.T) {
	assert.Equal(t, 1024, sizeClass(1))
	assert.Equal(t, 1024, sizeClass(1024))
	assert.Equal(t, 2048, sizeClass(1025))
	assert.Equal(t, 4096, sizeClass(4000))
}

func TestFloat64RoundTrip(t *testing.T) {
	buf := GetFloat64(100)
	require.Len(t, buf, 100)
	require.GreaterOrEqual(t, cap(buf), 100)

	for i := range buf {
		buf[i] = float64(i)
	}
	PutFloat64(buf)

	// A second request of the same class is usable regardless of whether
	// the pooled buffer was reused.
	again := GetFloat64(50)
	require.Len(t, again, 50)
	PutFloat64(again)

	PutFloat64(nil)
}

func TestBoolBuffersAreZeroed(t *testing.T) {
	buf := GetBool(64)
	require.Len(t, buf, 64)
	for i := range buf {
		buf[i] = true
	}
	PutBool(buf)

	clean := GetBool(64)
	for i, v := range clean {
		assert.False(t, v, "index %d not reset", i)
	}
	PutBool(clean)

	PutBool(nil)
}
