package tree

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/figueras/belchior/lexer"
)

// Theme styles the indented representation of a tree.
type Theme struct {
	Rule     lipgloss.Style
	Terminal lipgloss.Style
	Error    lipgloss.Style
	Position lipgloss.Style
}

// DefaultTheme returns the theme used for coloured output.
func DefaultTheme() *Theme {
	return &Theme{
		Rule:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Terminal: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Position: lipgloss.NewStyle().Faint(true),
	}
}

func (th *Theme) render(style func(*Theme) lipgloss.Style, s string) string {
	if th == nil {
		return s
	}
	return style(th).Render(s)
}

// Fprint writes an indented representation of the tree to w, one node per
// line. A nil theme writes plain text.
func Fprint(w io.Writer, n *Node, th *Theme) error {
	bw := bufio.NewWriter(w)
	if err := printLevel(bw, n, 0, th); err != nil {
		return err
	}
	return bw.Flush()
}

func printLevel(w io.Writer, n *Node, level int, th *Theme) error {
	indent := strings.Repeat("    ", level)

	if n == nil {
		_, err := fmt.Fprintf(w, "%s:nil\n", indent)
		return err
	}

	var line string
	switch n.Type() {

	case NodeTypeRule:
		line = th.render(ruleStyle, n.Rule())

	case NodeTypeTerminal:
		line = th.render(terminalStyle, leafText(n)) + " " + th.render(positionStyle, leafPosition(n))

	case NodeTypeError:
		line = th.render(errorStyle, "error "+leafText(n)) + " " + th.render(positionStyle, leafPosition(n))

	default:
		panic("unknown node type")
	}

	if _, err := fmt.Fprintf(w, "%s%s\n", indent, line); err != nil {
		return err
	}

	for _, child := range n.Children() {
		if err := printLevel(w, child, level+1, th); err != nil {
			return err
		}
	}
	return nil
}

func ruleStyle(th *Theme) lipgloss.Style     { return th.Rule }
func terminalStyle(th *Theme) lipgloss.Style { return th.Terminal }
func errorStyle(th *Theme) lipgloss.Style    { return th.Error }
func positionStyle(th *Theme) lipgloss.Style { return th.Position }

func leafText(n *Node) string {
	tok := n.Token()
	if tok == nil {
		return ""
	}
	return fmt.Sprintf("%v %q", tok.Type(), rawText(tok))
}

func leafPosition(n *Node) string {
	tok := n.Token()
	if tok == nil {
		return ""
	}
	line, col := tok.Pos()
	return fmt.Sprintf("[%d %d]", line, col)
}

func rawText(tok *lexer.Token) string {
	if tok.Is(lexer.TokenEOF) {
		return "<EOF>"
	}
	return tok.Text()
}

// Encode transforms a node into its LISP-style text representation: leaves
// and childless rules are written as their text, any other rule as
// "(rule child1 child2 ...)".
func Encode(n *Node) []byte {
	var sb strings.Builder
	encodeNode(&sb, n)
	return []byte(sb.String())
}

func encodeNode(sb *strings.Builder, n *Node) {
	if n == nil {
		sb.WriteString(":nil")
		return
	}

	children := n.Children()
	if len(children) == 0 {
		sb.WriteString(n.Text())
		return
	}

	sb.WriteByte('(')
	sb.WriteString(n.Text())
	for _, child := range children {
		sb.WriteByte(' ')
		encodeNode(sb, child)
	}
	sb.WriteByte(')')
}
