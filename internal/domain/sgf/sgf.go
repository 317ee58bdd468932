package sgf

// GameTree is one SGF tree: the main line plus its variations.
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node holds the properties of one SGF node (SZ[19], W[ab], ...).
// A property may carry several values, e.g. AB[aa][bb].
type Node struct {
	Properties map[string][]string
}

// SGF is the root of an SGF collection with a single tree.
type SGF struct {
	Root *GameTree
}

// RootOrder is the property order used when writing a node.
// Properties missing from the list are written afterwards in name order.
var RootOrder = []string{"GM", "FF", "CA", "AP", "SZ", "KM", "HA", "GN", "DT", "PC", "PB", "PW", "RE", "RU", "C", "B", "W"}
