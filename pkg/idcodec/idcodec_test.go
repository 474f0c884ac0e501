package idcodec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := New(0xdeadbeef)

	for _, id := range []int64{1, 42, 1<<40 + 7, 1<<62 - 1} {
		token := codec.Encode(id)
		require.NotEmpty(t, token)

		decoded, err := codec.Decode(token)
		require.NoError(t, err)
		require.Equal(t, id, decoded)
	}
}

func TestEncodeInjective(t *testing.T) {
	codec := New(12345)

	seen := map[string]int64{}
	for id := int64(1); id <= 1000; id++ {
		token := codec.Encode(id)
		prev, dup := seen[token]
		require.False(t, dup, "token collision between %d and %d", prev, id)
		seen[token] = id
	}
}

func TestDecodeMalformed(t *testing.T) {
	codec := New(0xdeadbeef)

	for _, token := range []string{"", "!!!", "abc", "zzzzzzzzzzzzzzzz", codec.Encode(99) + "0"} {
		_, err := codec.Decode(token)
		require.ErrorIs(t, err, ErrMalformedToken, "token %q", token)
	}
}

func TestDecodeRejectsDifferentKey(t *testing.T) {
	a := New(1)
	b := New(2)

	token := a.Encode(7)
	if decoded, err := b.Decode(token); err == nil {
		require.NotEqual(t, int64(7), decoded)
	}
}
