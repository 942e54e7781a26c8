package tree

// NodeType represents the type of a parse tree node
type NodeType uint8

// Node types
const (
	NodeTypeInvalid NodeType = iota

	NodeTypeRule     // Invocation of a grammar rule, has children
	NodeTypeTerminal // Matched (or conjured) token
	NodeTypeError    // Token consumed while recovering from a syntax error
)

func (nt NodeType) String() string {
	s, ok := nodeTypeName[nt]
	if ok {
		return s
	}
	return ""
}

var nodeTypeName = map[NodeType]string{
	NodeTypeRule:     "rule",
	NodeTypeTerminal: "terminal",
	NodeTypeError:    "error",
}
