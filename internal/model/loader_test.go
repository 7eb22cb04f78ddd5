package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransitionIndexRejectsUnknownName(t *testing.T) {
	_, err := transitionIndex("NOPE")
	require.Error(t, err)
}

func TestTransitionIndexKnowsEveryNamedTransition(t *testing.T) {
	names := []string{"MM", "MI", "MD", "II", "IM", "DD", "DM", "GE", "GG", "ER", "RS", "RR", "ES", "ES1"}
	seen := map[int]bool{}
	for _, n := range names {
		idx, err := transitionIndex(n)
		require.NoError(t, err)
		require.False(t, seen[idx], "duplicate index for %s", n)
		seen[idx] = true
	}
	require.Len(t, seen, 14)
}

func TestNt2IntMapsBases(t *testing.T) {
	require.Equal(t, 0, nt2int("A"))
	require.Equal(t, 1, nt2int("C"))
	require.Equal(t, 2, nt2int("G"))
	require.Equal(t, 3, nt2int("T"))
	require.Equal(t, 4, nt2int("N"))
	require.Equal(t, 4, nt2int(""))
}
