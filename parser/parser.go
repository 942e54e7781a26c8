package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/figueras/belchior/lexer"
	"github.com/figueras/belchior/tree"
)

// Parser builds a parse tree from the tokens of a lexer, starting at the
// "start" rule.
type Parser struct {
	lx   *lexer.Lexer
	root *tree.Node
	ctx  *tree.Node

	la   []*lexer.Token
	eof  *lexer.Token
	last *lexer.Token

	listeners []ErrorListener

	errorRecovery bool
	syntaxErrors  int
	consumed      int
	tokens        int
}

// New creates a parser reading from r. Errors are reported to stderr until
// the listeners are replaced.
func New(r io.Reader) *Parser {
	return &Parser{
		lx: lexer.New(r),
		listeners: []ErrorListener{
			NewConsoleErrorListener(os.Stderr),
		},
	}
}

// AddErrorListener registers a listener for syntax errors.
func (p *Parser) AddErrorListener(l ErrorListener) {
	p.listeners = append(p.listeners, l)
}

// RemoveErrorListeners drops every registered listener, including the
// default console one.
func (p *Parser) RemoveErrorListeners() {
	p.listeners = nil
}

// Parse runs the lexer and the start rule. Syntax errors are reported to the
// listeners and recovered from, they never make Parse fail; the returned
// error comes from the lexer, e.g. lexer.ErrForceStopped after Stop.
func (p *Parser) Parse() error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- p.lx.Scan()
	}()

	p.start()

	p.lx.Stop()
	for p.lx.Next() {
		// drain
	}

	return <-errCh
}

// Stop interrupts a running Parse, the rest of the input is seen as EOF.
func (p *Parser) Stop() {
	p.lx.Stop()
}

// Tree returns the root of the parse tree, nil before Parse.
func (p *Parser) Tree() *tree.Node {
	return p.root
}

// NumberOfSyntaxErrors returns how many errors were reported, token
// recognition errors included.
func (p *Parser) NumberOfSyntaxErrors() int {
	return p.syntaxErrors
}

// TokenCount returns how many tokens were read from the lexer.
func (p *Parser) TokenCount() int {
	return p.tokens
}

func (p *Parser) read() *lexer.Token {
	for p.lx.Next() {
		tok := p.lx.Token()
		p.tokens++
		p.last = &tok

		if tok.Is(lexer.TokenInvalid) {
			p.notify(&tok, fmt.Sprintf("token recognition error at: '%s'", tree.EscapeWhitespace(tok.Text())))
			continue
		}

		if tok.Is(lexer.TokenEOF) {
			p.eof = &tok
		}
		return &tok
	}

	if p.eof == nil {
		// stopped before the end of the input
		line, col := 1, 1
		if p.last != nil {
			line, col = p.last.Pos()
		}
		p.eof = lexer.NewToken(lexer.TokenEOF, "", line, col)
	}
	return p.eof
}

// LA returns the i-th token of lookahead, starting at 1.
func (p *Parser) LA(i int) *lexer.Token {
	for len(p.la) < i {
		p.la = append(p.la, p.read())
	}
	return p.la[i-1]
}

func (p *Parser) consume() *lexer.Token {
	tok := p.LA(1)
	p.la = p.la[1:]
	p.consumed++
	return tok
}

func (p *Parser) enter(rule string) *tree.Node {
	node := tree.NewRule(rule)
	if p.ctx != nil {
		mustPush(p.ctx.Push(node))
	}
	p.ctx = node
	return node
}

func (p *Parser) exit() {
	if parent := p.ctx.Parent(); parent != nil {
		p.ctx = parent
	}
}

func (p *Parser) wrap(node *tree.Node) *tree.Node {
	p.ctx = node.Wrap(node.Rule())
	return p.ctx
}

func (p *Parser) consumeTerminal() {
	_, err := p.ctx.PushTerminal(p.consume())
	mustPush(err)
}

func (p *Parser) consumeError() {
	_, err := p.ctx.PushError(p.consume())
	mustPush(err)
}

func mustPush(err error) {
	if err != nil {
		panic(err)
	}
}

// Parse takes an array of bytes and returns its parse tree, or the list of
// syntax errors found in it.
func Parse(in []byte) (*tree.Node, error) {
	p := New(bytes.NewReader(in))

	collector := &ErrorCollector{}
	p.RemoveErrorListeners()
	p.AddErrorListener(collector)

	if err := p.Parse(); err != nil {
		return nil, err
	}

	if err := collector.Err(); err != nil {
		return nil, err
	}

	return p.Tree(), nil
}
