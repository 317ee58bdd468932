package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"woodsim/internal/domain/game"
	"woodsim/internal/domain/sgf"
)

const (
	recordApp  = "WoodRuleTester:1.0"
	recordName = "WoodRuleGame"
)

// PrepareRecord builds the starting record: game info in the root node and
// a single White move holding the corner stone.
func PrepareRecord(whiteStone string, date time.Time) sgf.SGF {
	return sgf.SGF{
		Root: &sgf.GameTree{
			Nodes: []sgf.Node{
				{
					Properties: map[string][]string{
						"GM": {"1"},
						"FF": {"4"},
						"CA": {"UTF-8"},
						"AP": {recordApp},
						"SZ": {strconv.Itoa(game.BoardSize)},
						"KM": {strconv.Itoa(game.Komi)},
						"HA": {strconv.Itoa(game.Handicap)},
						"GN": {recordName},
						"DT": {date.Format("2006-01-02")},
						"PC": {"Local"},
						"PB": {"Black"},
						"PW": {"White"},
					},
				},
				{
					Properties: map[string][]string{
						"W": {whiteStone},
					},
				},
			},
		},
	}
}

func SerializeSGF(s *sgf.SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	serializeGameTree(&builder, s.Root)
	builder.WriteString(")")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *sgf.GameTree) {
	for i, node := range tree.Nodes {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(";")

		used := make(map[string]bool, len(node.Properties))
		for _, key := range sgf.RootOrder {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				writeProperty(builder, key, values)
			}
		}

		rest := make([]string, 0, len(node.Properties))
		for key := range node.Properties {
			if !used[key] {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			writeProperty(builder, key, node.Properties[key])
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

func writeProperty(builder *strings.Builder, key string, values []string) {
	builder.WriteString(key)
	for _, v := range values {
		fmt.Fprintf(builder, "[%s]", escapeValue(v))
	}
}

// escapeValue applies the SGF text escapes for ']' and '\'.
func escapeValue(v string) string {
	if !strings.ContainsAny(v, `]\`) {
		return v
	}
	var b strings.Builder
	for _, r := range v {
		if r == ']' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
