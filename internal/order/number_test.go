package order

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNumberFormat(t *testing.T) {
	at := time.Date(2025, 3, 7, 10, 15, 42, 123_000_000, time.UTC)
	num := GenerateNumber(at)

	require.True(t, strings.HasPrefix(num, "250307-"), "got %s", num)
	assert.Len(t, num, 13)
}

func TestGenerateNumberDiffersAcrossMilliseconds(t *testing.T) {
	at := time.Date(2025, 3, 7, 10, 15, 42, 123_000_000, time.UTC)

	// exact millisecond multiples are the worst case for a sub-millisecond
	// suffix; every one of them must still produce a distinct code
	a := GenerateNumber(at)
	for _, step := range []time.Duration{
		time.Millisecond,
		2 * time.Millisecond,
		500 * time.Millisecond,
	} {
		b := GenerateNumber(at.Add(step))
		assert.NotEqual(t, a, b, "collision at +%s", step)
		// same day shares the prefix
		assert.Equal(t, a[:7], b[:7])
	}
}
