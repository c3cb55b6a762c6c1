package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum64(t *testing.T) {
	tests := []struct {
		name string
		data string
		sum  uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.sum, Sum64([]byte(tt.data)))
		})
	}
}

func TestDistinctSet(t *testing.T) {
	set := NewDistinctSet()
	require.Equal(t, 0, set.Len())

	require.True(t, set.Add([]byte("233")))
	require.False(t, set.Add([]byte("233")))
	require.True(t, set.Add([]byte("2333")))
	require.True(t, set.Add(nil))
	require.False(t, set.Add([]byte{}))

	require.Equal(t, 3, set.Len())
}

func TestDistinctSet_DigestCollision(t *testing.T) {
	set := NewDistinctSet()

	// Force both inputs into one bucket to check they are still told apart.
	require.True(t, set.add(42, []byte("a")))
	require.True(t, set.add(42, []byte("b")))
	require.False(t, set.add(42, []byte("a")))
	require.Equal(t, 2, set.Len())
}

func TestDistinctSet_CopiesInput(t *testing.T) {
	set := NewDistinctSet()

	buf := []byte("abc")
	require.True(t, set.Add(buf))
	buf[0] = 'x'

	require.False(t, set.Add([]byte("abc")))
	require.True(t, set.Add(buf))
	require.Equal(t, 2, set.Len())
}
