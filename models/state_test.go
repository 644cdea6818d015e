package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoundedResultDerivation(t *testing.T) {
	// result = min + raw mod (max - min + 1)
	for _, raw := range []uint32{0, 1, 9, 10, 11, 4294967295} {
		require.Equal(t, MinResult+raw%(MaxResult-MinResult+1), BoundedResult(raw, MinResult, MaxResult))
	}
}

func TestBoundedResultWithFlippedBounds(t *testing.T) {
	result := BoundedResult(12345, 100, 50)
	require.GreaterOrEqual(t, result, uint32(50))
	require.LessOrEqual(t, result, uint32(100))
}

func TestBoundedResultWithEqualBounds(t *testing.T) {
	require.Equal(t, uint32(100), BoundedResult(98765, 100, 100))
}

func TestBoundedResultWithinBounds(t *testing.T) {
	for raw := uint32(0); raw < 1000; raw++ {
		result := BoundedResult(raw, 100, 200)
		require.GreaterOrEqual(t, result, uint32(100))
		require.LessOrEqual(t, result, uint32(200))
	}
}

func TestBoundedResultCoversAllValues(t *testing.T) {
	counts := make([]int, 10)
	for raw := uint32(0); raw < 1000; raw++ {
		counts[BoundedResult(raw, 0, 9)]++
	}
	for i, count := range counts {
		require.Greaterf(t, count, 0, "value %d never produced", i)
	}
}

func TestUserStatePending(t *testing.T) {
	var u UserState
	require.False(t, u.Pending(), "fresh record has no request")

	u.RequestedAt = 1000
	require.True(t, u.Pending())

	u.SettledAt = 1010
	require.False(t, u.Pending())
}
