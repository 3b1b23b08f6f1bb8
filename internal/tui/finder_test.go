package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/multicol/internal/board"
)

func TestRankMatches(t *testing.T) {
	ids := searchable(board.Generate(2))

	require.Equal(t, []board.ID{"B2"}, rankMatches("b2", ids)[:1])
	require.Empty(t, rankMatches("", ids))
	require.Empty(t, rankMatches("qqqqqq", ids))

	got := rankMatches("C", ids)
	require.Equal(t, []board.ID{"C", "C1", "C2"}, got[:3])
}

func TestMatchScoreOrdersKinds(t *testing.T) {
	prefix := matchScore("to", "todo")
	inner := matchScore("do", "todo")
	fuzzy := matchScore("tado", "todo")
	require.Less(t, prefix, inner)
	require.Less(t, inner, fuzzy)
}

func TestMatchScoreBandsHoldForLongIDs(t *testing.T) {
	long := board.ID("release-" + strings.Repeat("x", 80))
	prefix := matchScore("rel", long)
	inner := matchScore("ease", long)
	require.Less(t, prefix, inner)
	require.Less(t, prefix, matchScore("ease", "lease"))
	require.Less(t, inner, matchScore("zzz", "zz"))

	got := rankMatches("ease", []board.ID{long, "lease", "ex"})
	require.Equal(t, []board.ID{"lease", long}, got)
}
