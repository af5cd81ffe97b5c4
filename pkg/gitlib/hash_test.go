package gitlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitdrift/gitdrift/pkg/gitlib"
)

func TestHashRoundTrip(t *testing.T) {
	t.Parallel()

	const hex = "0123456789abcdef0123456789abcdef01234567"

	h := gitlib.NewHash(hex)

	assert.Equal(t, hex, h.String())
	assert.Equal(t, h, gitlib.HashFromOid(h.ToOid()))
}

func TestHashShort(t *testing.T) {
	t.Parallel()

	h := gitlib.NewHash("abcdef0123456789abcdef0123456789abcdef01")

	assert.Equal(t, "abcdef0", h.Short())
	assert.Len(t, h.Short(), gitlib.ShortHashLen)
}

func TestHashHasPrefix(t *testing.T) {
	t.Parallel()

	h := gitlib.NewHash("abc1230000000000000000000000000000000000")

	tests := []struct {
		name   string
		prefix string
		want   bool
	}{
		{"full short prefix", "abc123", true},
		{"single char", "a", true},
		{"uppercase input", "ABC123", true},
		{"mismatch", "abd", false},
		{"empty prefix", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, h.HasPrefix(tt.prefix))
		})
	}
}

func TestHashIsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, gitlib.Hash{}.IsZero())
	assert.True(t, gitlib.NewHash("not hex at all").IsZero())
	assert.False(t, gitlib.NewHash("01").IsZero())
}
