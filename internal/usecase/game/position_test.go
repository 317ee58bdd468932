package game

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCornerPosition_Shape(t *testing.T) {
	t.Parallel()
	gen := NewPositionGenerator(42)

	for i := 0; i < 1000; i++ {
		pos := gen.CornerPosition()
		require.Len(t, pos, 2)
		require.Equal(t, CornerRow, pos[1], "row must stay on the second line")
		require.True(t, bytes.IndexByte(CornerColumns, pos[0]) >= 0, "unexpected column in %q", pos)
	}
}

func TestCornerPosition_Uniform(t *testing.T) {
	t.Parallel()
	const samples = 40000
	gen := NewPositionGenerator(7)

	counts := make(map[byte]int)
	for i := 0; i < samples; i++ {
		counts[gen.CornerPosition()[0]]++
	}

	require.Len(t, counts, len(CornerColumns), "every corner column should show up")
	expected := samples / len(CornerColumns)
	for col, n := range counts {
		require.InDelta(t, expected, n, float64(expected)*0.05, "column %c is off balance", col)
	}
}

func TestCornerPosition_SeedIsReproducible(t *testing.T) {
	t.Parallel()
	a, b := NewPositionGenerator(99), NewPositionGenerator(99)
	for i := 0; i < 50; i++ {
		require.Equal(t, a.CornerPosition(), b.CornerPosition())
	}
}
