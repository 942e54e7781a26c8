package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/figueras/belchior/lexer"
	"github.com/figueras/belchior/tree"
)

// bailout unwinds the rules up to the enclosing declaration, which
// resynchronizes the input.
type bailout struct{}

// Missing tokens of these types are conjured instead of giving up on the
// current declaration.
var insertable = map[lexer.TokenType]bool{
	lexer.TokenSemicolon:  true,
	lexer.TokenCloseParen: true,
	lexer.TokenCloseBrace: true,
}

// notify passes an error to every listener. Listeners get the column
// counted from 0, as console error listeners print it.
func (p *Parser) notify(offending *lexer.Token, msg string) {
	p.syntaxErrors++

	line, col := offending.Pos()
	for _, l := range p.listeners {
		l.SyntaxError(offending, line, col-1, msg)
	}
}

// report notifies listeners and enters error recovery mode. While in
// recovery mode reports are dropped, a successful match leaves it.
func (p *Parser) report(offending *lexer.Token, format string, args ...interface{}) {
	if p.errorRecovery {
		return
	}
	p.errorRecovery = true

	p.notify(offending, fmt.Sprintf(format, args...))
}

// matched consumes the current token as an expected one.
func (p *Parser) matched() {
	p.errorRecovery = false
	p.consumeTerminal()
}

func (p *Parser) match(tt lexer.TokenType) {
	tok := p.LA(1)
	if tok.Is(tt) {
		p.matched()
		return
	}

	if !tok.Is(lexer.TokenEOF) && p.LA(2).Is(tt) {
		p.report(tok, "extraneous input %s expecting %s", tokenDisplay(tok), expecting(tt))
		p.consumeError()
		p.matched()
		return
	}

	if insertable[tt] {
		p.report(tok, "missing %s at %s", typeDisplay(tt), tokenDisplay(tok))
		p.conjure(tt, tok)
		return
	}

	p.report(tok, "mismatched input %s expecting %s", tokenDisplay(tok), expecting(tt))
	panic(bailout{})
}

func (p *Parser) conjure(tt lexer.TokenType, at *lexer.Token) {
	line, col := at.Pos()
	tok := lexer.NewToken(tt, fmt.Sprintf("<missing %s>", typeDisplay(tt)), line, col)

	_, err := p.ctx.PushTerminal(tok)
	mustPush(err)
}

// noViableAlternative reports a token that cannot start any alternative of
// the current rule and bails out.
func (p *Parser) noViableAlternative() {
	tok := p.LA(1)
	p.report(tok, "no viable alternative at input %s", tokenDisplay(tok))
	panic(bailout{})
}

// declarations parses declaration* up to the given follow token. Tokens that
// can neither start a declaration nor end the loop are dropped.
func (p *Parser) declarations(follow lexer.TokenType) {
	for {
		tok := p.LA(1)

		switch {
		case startsDeclaration(tok.Type()):
			p.declaration()

		case tok.Is(follow), tok.Is(lexer.TokenEOF):
			return

		default:
			p.report(tok, "extraneous input %s expecting %s", tokenDisplay(tok), expecting(append(declarationStarters(), follow)...))
			p.consumeError()
		}
	}
}

// recoverDeclaration is deferred by declaration. After a bailout it drops
// tokens until a ";", which is dropped too, or until a token the parser
// can resume on.
func (p *Parser) recoverDeclaration(consumed int) {
	e := recover()
	if e == nil {
		return
	}
	if _, ok := e.(bailout); !ok {
		panic(e)
	}

	for {
		tok := p.LA(1)

		if tok.Is(lexer.TokenEOF) || tok.Is(lexer.TokenCloseBrace) {
			return
		}

		if tok.Is(lexer.TokenSemicolon) {
			p.consumeError()
			return
		}

		if startsDeclaration(tok.Type()) && p.consumed > consumed {
			return
		}

		p.consumeError()
	}
}

func tokenDisplay(tok *lexer.Token) string {
	if tok.Is(lexer.TokenEOF) {
		return "<EOF>"
	}
	return "'" + tree.EscapeWhitespace(tok.Text()) + "'"
}

func typeDisplay(tt lexer.TokenType) string {
	if tt == lexer.TokenEOF {
		return "<EOF>"
	}
	return tt.String()
}

func expecting(tts ...lexer.TokenType) string {
	set := map[lexer.TokenType]bool{}
	for _, tt := range tts {
		set[tt] = true
	}

	sorted := make([]lexer.TokenType, 0, len(set))
	for tt := range set {
		sorted = append(sorted, tt)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	if len(sorted) == 1 {
		return typeDisplay(sorted[0])
	}

	names := make([]string, 0, len(sorted))
	for _, tt := range sorted {
		names = append(names, typeDisplay(tt))
	}
	return "{" + strings.Join(names, ", ") + "}"
}
