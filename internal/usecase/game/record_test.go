package game

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"woodsim/internal/domain/sgf"
)

func TestSerializeSGF_StartingRecord(t *testing.T) {
	t.Parallel()
	date := time.Date(2026, 2, 24, 10, 0, 0, 0, time.UTC)

	record := PrepareRecord("sb", date)
	got := SerializeSGF(&record)

	want := "(;GM[1]FF[4]CA[UTF-8]AP[WoodRuleTester:1.0]SZ[19]KM[0]HA[0]GN[WoodRuleGame]DT[2026-02-24]PC[Local]PB[Black]PW[White]\n;W[sb])"
	require.Equal(t, want, got)
	require.Equal(t, 1, strings.Count(got, "\n;W["), "exactly one white stone is placed")
	require.NotContains(t, got, ";B[")
}

func TestSerializeSGF_UnknownPropertiesSorted(t *testing.T) {
	t.Parallel()
	tree := sgf.SGF{Root: &sgf.GameTree{
		Nodes: []sgf.Node{{Properties: map[string][]string{
			"ZZ": {"1"},
			"SZ": {"9"},
			"AB": {"aa", "bb"},
		}}},
		Children: []*sgf.GameTree{
			{Nodes: []sgf.Node{{Properties: map[string][]string{"B": {"cc"}}}}},
		},
	}}

	require.Equal(t, "(;SZ[9]AB[aa][bb]ZZ[1](;B[cc]))", SerializeSGF(&tree))
}

func TestSerializeSGF_EscapesText(t *testing.T) {
	t.Parallel()
	tree := sgf.SGF{Root: &sgf.GameTree{
		Nodes: []sgf.Node{{Properties: map[string][]string{"C": {`a]b\c`}}}},
	}}

	require.Equal(t, `(;C[a\]b\\c])`, SerializeSGF(&tree))
}
