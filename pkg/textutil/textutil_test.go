package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "Magic 2010", expected: "magic_2010"},
		{input: "  Near   Mint ", expected: "near_mint"},
		{input: "Artifact\tCreature", expected: "artifact_creature"},
		{input: "red", expected: "red"},
	}

	for _, row := range table {
		require.Equal(t, row.expected, NormalizeKey(row.input))
	}
}

func TestMatchName(t *testing.T) {
	require.True(t, MatchName("My Deck", " my deck"))
	require.True(t, MatchName("Tradelist", "tradelist"))
	require.False(t, MatchName("wishlist", "tradelist"))
}
