package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/figueras/belchior/lexer"
)

// ErrNotRule is returned when attaching children to a leaf.
var ErrNotRule = errors.New("only rule nodes can accept children")

// Node represents a node of the parse tree
type Node struct {
	p *Node

	nt       NodeType
	rule     string
	tok      *lexer.Token
	children []*Node
}

func newNode(nt NodeType, rule string, tok *lexer.Token) *Node {
	return &Node{
		nt:   nt,
		rule: rule,
		tok:  tok,
	}
}

// NewRule creates and returns an orphaned rule node
func NewRule(rule string) *Node {
	return newNode(NodeTypeRule, rule, nil)
}

// NewTerminal creates and returns an orphaned terminal node for the given
// token
func NewTerminal(tok *lexer.Token) *Node {
	return newNode(NodeTypeTerminal, "", tok)
}

// NewError creates and returns an orphaned error node for the given token
func NewError(tok *lexer.Token) *Node {
	return newNode(NodeTypeError, "", tok)
}

// PushRule appends a new rule node to the node
func (n *Node) PushRule(rule string) (*Node, error) {
	node := NewRule(rule)
	if err := n.Push(node); err != nil {
		return nil, err
	}
	return node, nil
}

// PushTerminal appends a new terminal node to the node
func (n *Node) PushTerminal(tok *lexer.Token) (*Node, error) {
	node := NewTerminal(tok)
	if err := n.Push(node); err != nil {
		return nil, err
	}
	return node, nil
}

// PushError appends a new error node to the node
func (n *Node) PushError(tok *lexer.Token) (*Node, error) {
	node := NewError(tok)
	if err := n.Push(node); err != nil {
		return nil, err
	}
	return node, nil
}

// Push appends a child node to a rule node.
func (n *Node) Push(node *Node) error {
	if !n.IsRule() {
		return ErrNotRule
	}
	n.children = append(n.children, node)
	node.p = n
	return nil
}

// Wrap replaces n, in its parent, with a new rule node that holds n as its
// first child, and returns the new node. This is how left-recursive rules
// grow: the expression parsed so far becomes the left operand.
func (n *Node) Wrap(rule string) *Node {
	wrapper := NewRule(rule)

	if parent := n.p; parent != nil {
		for i := range parent.children {
			if parent.children[i] == n {
				parent.children[i] = wrapper
				break
			}
		}
		wrapper.p = parent
	}

	wrapper.children = []*Node{n}
	n.p = wrapper

	return wrapper
}

// Type returns the type of the node
func (n *Node) Type() NodeType {
	return n.nt
}

// Rule returns the rule name of a rule node
func (n *Node) Rule() string {
	return n.rule
}

// Token returns the token associated to a terminal or error node
func (n *Node) Token() *lexer.Token {
	return n.tok
}

// Children returns all the children of the node
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the parent node, nil for the root.
func (n *Node) Parent() *Node {
	return n.p
}

// IsRule returns true if the node is a rule invocation
func (n *Node) IsRule() bool {
	return n.nt == NodeTypeRule
}

// Text returns the text used to display the node: the rule name for rule
// nodes and the token text for leaves, with the end of file displayed as
// <EOF> and whitespace escaped.
func (n *Node) Text() string {
	if n.IsRule() {
		return n.rule
	}
	if n.tok == nil {
		return ""
	}
	if n.tok.Is(lexer.TokenEOF) {
		return "<EOF>"
	}
	return EscapeWhitespace(n.tok.Text())
}

func (n *Node) String() string {
	switch n.nt {
	case NodeTypeRule:
		return fmt.Sprintf("(%v %s)[%d]", n.nt, n.rule, len(n.children))
	}
	return fmt.Sprintf("(%v): %v", n.nt, n.tok)
}

// Walk visits the tree in pre-order. Children of a node are skipped when fn
// returns false.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		Walk(child, fn)
	}
}

var whitespaceEscaper = strings.NewReplacer(
	"\t", `\t`,
	"\n", `\n`,
	"\r", `\r`,
)

// EscapeWhitespace replaces tabs and line breaks with their escape sequence.
func EscapeWhitespace(s string) string {
	return whitespaceEscaper.Replace(s)
}
