package parser

import (
	"github.com/figueras/belchior/lexer"
)

// Binding power of the expr alternatives, higher binds tighter.
const (
	precedenceOr = iota + 1
	precedenceAnd
	precedenceEquality
	precedenceComparison
	precedenceAdditive
	precedenceMultiplicative
	precedenceUnary
)

var binaryPrecedence = map[lexer.TokenType]int{
	lexer.TokenOr:           precedenceOr,
	lexer.TokenAnd:          precedenceAnd,
	lexer.TokenEqual:        precedenceEquality,
	lexer.TokenNotEqual:     precedenceEquality,
	lexer.TokenLess:         precedenceComparison,
	lexer.TokenLessEqual:    precedenceComparison,
	lexer.TokenGreater:      precedenceComparison,
	lexer.TokenGreaterEqual: precedenceComparison,
	lexer.TokenPlus:         precedenceAdditive,
	lexer.TokenMinus:        precedenceAdditive,
	lexer.TokenStar:         precedenceMultiplicative,
	lexer.TokenSlash:        precedenceMultiplicative,
	lexer.TokenPercent:      precedenceMultiplicative,
}

func startsPrimary(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenInt, lexer.TokenFloat, lexer.TokenString,
		lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNil,
		lexer.TokenID, lexer.TokenOpenParen:
		return true
	}
	return false
}

func startsExpression(tt lexer.TokenType) bool {
	return startsPrimary(tt) || tt == lexer.TokenMinus || tt == lexer.TokenBang
}

func startsStatement(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenOpenBrace, lexer.TokenIf, lexer.TokenWhile,
		lexer.TokenPrint, lexer.TokenReturn:
		return true
	}
	return startsExpression(tt)
}

func startsDeclaration(tt lexer.TokenType) bool {
	return tt == lexer.TokenFunc || tt == lexer.TokenVar || startsStatement(tt)
}

func declarationStarters() []lexer.TokenType {
	starters := []lexer.TokenType{}
	for tt := lexer.TokenInvalid; tt <= lexer.TokenSemicolon; tt++ {
		if startsDeclaration(tt) {
			starters = append(starters, tt)
		}
	}
	return starters
}

// start : declaration* EOF ;
func (p *Parser) start() {
	p.root = p.enter("start")
	defer p.exit()

	p.declarations(lexer.TokenEOF)
	p.match(lexer.TokenEOF)
}

// declaration : funcDecl | varDecl | statement ;
func (p *Parser) declaration() {
	p.enter("declaration")
	defer p.exit()
	defer p.recoverDeclaration(p.consumed)

	switch p.LA(1).Type() {
	case lexer.TokenFunc:
		p.funcDecl()
	case lexer.TokenVar:
		p.varDecl()
	default:
		p.statement()
	}
}

// funcDecl : 'func' ID '(' params? ')' block ;
func (p *Parser) funcDecl() {
	p.enter("funcDecl")
	defer p.exit()

	p.match(lexer.TokenFunc)
	p.match(lexer.TokenID)
	p.match(lexer.TokenOpenParen)
	if p.LA(1).Is(lexer.TokenID) {
		p.params()
	}
	p.match(lexer.TokenCloseParen)
	p.block()
}

// params : ID (',' ID)* ;
func (p *Parser) params() {
	p.enter("params")
	defer p.exit()

	p.match(lexer.TokenID)
	for p.LA(1).Is(lexer.TokenComma) {
		p.matched()
		p.match(lexer.TokenID)
	}
}

// varDecl : 'var' ID ('=' expr)? ';' ;
func (p *Parser) varDecl() {
	p.enter("varDecl")
	defer p.exit()

	p.match(lexer.TokenVar)
	p.match(lexer.TokenID)
	if p.LA(1).Is(lexer.TokenAssign) {
		p.matched()
		p.expr(0)
	}
	p.match(lexer.TokenSemicolon)
}

// statement : block | ifStmt | whileStmt | printStmt | returnStmt
//           | assignStmt | exprStmt ;
func (p *Parser) statement() {
	p.enter("statement")
	defer p.exit()

	switch p.LA(1).Type() {
	case lexer.TokenOpenBrace:
		p.block()
	case lexer.TokenIf:
		p.ifStmt()
	case lexer.TokenWhile:
		p.whileStmt()
	case lexer.TokenPrint:
		p.printStmt()
	case lexer.TokenReturn:
		p.returnStmt()
	case lexer.TokenID:
		if p.LA(2).Is(lexer.TokenAssign) {
			p.assignStmt()
			return
		}
		p.exprStmt()
	default:
		p.exprStmt()
	}
}

// block : '{' declaration* '}' ;
func (p *Parser) block() {
	p.enter("block")
	defer p.exit()

	p.match(lexer.TokenOpenBrace)
	p.declarations(lexer.TokenCloseBrace)
	p.match(lexer.TokenCloseBrace)
}

// ifStmt : 'if' '(' expr ')' statement ('else' statement)? ;
func (p *Parser) ifStmt() {
	p.enter("ifStmt")
	defer p.exit()

	p.match(lexer.TokenIf)
	p.match(lexer.TokenOpenParen)
	p.expr(0)
	p.match(lexer.TokenCloseParen)
	p.statement()
	if p.LA(1).Is(lexer.TokenElse) {
		p.matched()
		p.statement()
	}
}

// whileStmt : 'while' '(' expr ')' statement ;
func (p *Parser) whileStmt() {
	p.enter("whileStmt")
	defer p.exit()

	p.match(lexer.TokenWhile)
	p.match(lexer.TokenOpenParen)
	p.expr(0)
	p.match(lexer.TokenCloseParen)
	p.statement()
}

// printStmt : 'print' expr ';' ;
func (p *Parser) printStmt() {
	p.enter("printStmt")
	defer p.exit()

	p.match(lexer.TokenPrint)
	p.expr(0)
	p.match(lexer.TokenSemicolon)
}

// returnStmt : 'return' expr? ';' ;
func (p *Parser) returnStmt() {
	p.enter("returnStmt")
	defer p.exit()

	p.match(lexer.TokenReturn)
	if startsExpression(p.LA(1).Type()) {
		p.expr(0)
	}
	p.match(lexer.TokenSemicolon)
}

// assignStmt : ID '=' expr ';' ;
func (p *Parser) assignStmt() {
	p.enter("assignStmt")
	defer p.exit()

	p.match(lexer.TokenID)
	p.match(lexer.TokenAssign)
	p.expr(0)
	p.match(lexer.TokenSemicolon)
}

// exprStmt : expr ';' ;
func (p *Parser) exprStmt() {
	p.enter("exprStmt")
	defer p.exit()

	p.expr(0)
	p.match(lexer.TokenSemicolon)
}

// expr : primary
//      | expr '(' args? ')'
//      | ('-' | '!') expr
//      | expr ('*' | '/' | '%') expr
//      | expr ('+' | '-') expr
//      | expr ('<' | '<=' | '>' | '>=') expr
//      | expr ('==' | '!=') expr
//      | expr '&&' expr
//      | expr '||' expr ;
//
// Operands bind with at least the given precedence. Every time an operator
// is found, the expression parsed so far is wrapped into a new expr node and
// becomes its left operand.
func (p *Parser) expr(precedence int) {
	node := p.enter("expr")
	defer p.exit()

	tok := p.LA(1)
	switch {
	case tok.Is(lexer.TokenMinus), tok.Is(lexer.TokenBang):
		p.matched()
		p.expr(precedenceUnary)
	case startsPrimary(tok.Type()):
		p.primary()
	default:
		p.noViableAlternative()
	}

	for {
		tok := p.LA(1)

		if tok.Is(lexer.TokenOpenParen) {
			node = p.wrap(node)
			p.matched()
			if startsExpression(p.LA(1).Type()) {
				p.args()
			}
			p.match(lexer.TokenCloseParen)
			continue
		}

		q, ok := binaryPrecedence[tok.Type()]
		if !ok || q < precedence {
			return
		}

		node = p.wrap(node)
		p.matched()
		p.expr(q + 1)
	}
}

// args : expr (',' expr)* ;
func (p *Parser) args() {
	p.enter("args")
	defer p.exit()

	p.expr(0)
	for p.LA(1).Is(lexer.TokenComma) {
		p.matched()
		p.expr(0)
	}
}

// primary : INT | FLOAT | STRING | 'true' | 'false' | 'nil' | ID
//         | '(' expr ')' ;
func (p *Parser) primary() {
	p.enter("primary")
	defer p.exit()

	if p.LA(1).Is(lexer.TokenOpenParen) {
		p.matched()
		p.expr(0)
		p.match(lexer.TokenCloseParen)
		return
	}

	p.matched()
}
