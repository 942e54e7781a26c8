package lexer

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"text/scanner"
)

// ErrForceStopped is returned by Scan when Stop was called before the input
// was exhausted.
var ErrForceStopped = errors.New("lexer: force stopped")

type lexState func(*Lexer) lexState

// New initializes a Lexer object
func New(r io.Reader) *Lexer {
	s := &scanner.Scanner{}

	lx := &Lexer{
		in:     s.Init(r),
		tokens: make(chan Token),
		done:   make(chan struct{}),
		buf:    []rune{},

		line:      1,
		startLine: 1,
		startCol:  1,
	}

	// Invalid encodings come back as utf8.RuneError and end up in an
	// invalid token, no need to print them.
	lx.in.Error = func(*scanner.Scanner, string) {}

	return lx
}

// Lexer represents a lexical analyzer
type Lexer struct {
	in *scanner.Scanner

	tokens chan Token
	tok    Token

	done     chan struct{}
	stopOnce sync.Once
	lastErr  error

	buf []rune

	// runes taken from in but not consumed yet
	ahead []rune

	line int
	col  int

	startLine int
	startCol  int
}

// Next waits for the next token and returns false once the stream is closed.
func (lx *Lexer) Next() bool {
	tok, ok := <-lx.tokens
	if !ok {
		return false
	}
	lx.tok = tok
	return true
}

// Token returns the token read by the last call to Next.
func (lx *Lexer) Token() Token {
	return lx.tok
}

// Stop asks the lexer to quit scanning. It is safe to call Stop more than
// once and from a goroutine other than the one running Scan.
func (lx *Lexer) Stop() {
	lx.stopOnce.Do(func() {
		close(lx.done)
	})
}

func (lx *Lexer) stopped() bool {
	select {
	case <-lx.done:
		return true
	default:
		return false
	}
}

// Scan starts scanning the reader for tokens.
func (lx *Lexer) Scan() error {
	for state := lexDefaultState; state != nil; {
		if lx.stopped() {
			close(lx.tokens)
			return ErrForceStopped
		}
		state = state(lx)
	}

	if lx.stopped() {
		close(lx.tokens)
		return ErrForceStopped
	}

	if lx.lastErr == nil {
		lx.emit(TokenEOF)
	}

	close(lx.tokens)

	return lx.lastErr
}

func (lx *Lexer) emit(tt TokenType) {
	tok := Token{
		tt:     tt,
		lexeme: string(lx.buf),

		line: lx.startLine,
		col:  lx.startCol,
	}

	lx.ignore()

	if lx.stopped() {
		return
	}

	select {
	case lx.tokens <- tok:
	case <-lx.done:
	}
}

// ignore drops the runes read so far, the next token starts at the current
// position.
func (lx *Lexer) ignore() {
	lx.buf = lx.buf[0:0]
	lx.startLine = lx.line
	lx.startCol = lx.col + 1
}

func (lx *Lexer) peek() rune {
	if len(lx.ahead) > 0 {
		return lx.ahead[0]
	}
	return lx.in.Peek()
}

// peekSecond returns the rune after the next one, consuming neither.
func (lx *Lexer) peekSecond() rune {
	for len(lx.ahead) < 2 {
		lx.ahead = append(lx.ahead, lx.in.Next())
	}
	return lx.ahead[1]
}

func (lx *Lexer) next() (rune, error) {
	var r rune
	if len(lx.ahead) > 0 {
		r = lx.ahead[0]
		lx.ahead = lx.ahead[1:]
	} else {
		r = lx.in.Next()
	}
	if r == scanner.EOF {
		return rune(0), io.EOF
	}

	lx.buf = append(lx.buf, r)

	if r == '\n' {
		lx.line++
		lx.col = 0
	} else {
		lx.col++
	}

	return r, nil
}

func lexDefaultState(lx *Lexer) lexState {
	r, err := lx.next()
	if err != nil {
		return lexStateError(err)
	}

	switch {

	case isWhitespace(r):
		return lexWhitespace
	case isLetter(r):
		return lexIdentifier
	case isDigit(r):
		return lexNumber

	case r == '"':
		return lexString
	case r == '/':
		return lexSlash

	case r == '=':
		return lexOneOrTwo('=', TokenAssign, TokenEqual)
	case r == '!':
		return lexOneOrTwo('=', TokenBang, TokenNotEqual)
	case r == '<':
		return lexOneOrTwo('=', TokenLess, TokenLessEqual)
	case r == '>':
		return lexOneOrTwo('=', TokenGreater, TokenGreaterEqual)
	case r == '&':
		return lexDouble('&', TokenAnd)
	case r == '|':
		return lexDouble('|', TokenOr)

	}

	for tt := range tokenValues {
		if isTokenType(tt)(r) {
			return lexEmit(tt)
		}
	}

	return lexEmit(TokenInvalid)
}

func lexWhitespace(lx *Lexer) lexState {
	for isWhitespace(lx.peek()) {
		if _, err := lx.next(); err != nil {
			return lexStateError(err)
		}
	}
	lx.ignore()
	return lexDefaultState
}

func lexIdentifier(lx *Lexer) lexState {
	for isIdentifierBody(lx.peek()) {
		if _, err := lx.next(); err != nil {
			return lexStateError(err)
		}
	}
	lx.emit(Lookup(string(lx.buf)))
	return lexDefaultState
}

func lexNumber(lx *Lexer) lexState {
	lexDigits(lx)

	// "1." is an INT followed by a stray dot
	if lx.peek() != '.' || !isDigit(lx.peekSecond()) {
		return lexEmit(TokenInt)
	}

	if _, err := lx.next(); err != nil {
		return lexStateError(err)
	}

	lexDigits(lx)
	return lexEmit(TokenFloat)
}

func lexDigits(lx *Lexer) {
	for isDigit(lx.peek()) {
		if _, err := lx.next(); err != nil {
			return
		}
	}
}

func lexString(lx *Lexer) lexState {
	for {
		switch lx.peek() {
		case scanner.EOF:
			return lexEmit(TokenInvalid)
		case '\n':
			return lexReject
		}

		r, err := lx.next()
		if err != nil {
			return lexStateError(err)
		}

		switch r {
		case '"':
			return lexEmit(TokenString)

		case '\\':
			switch lx.peek() {
			case 'n', 'r', 't', '"', '\\':
				if _, err := lx.next(); err != nil {
					return lexStateError(err)
				}
			default:
				return lexReject
			}
		}
	}
}

func lexSlash(lx *Lexer) lexState {
	switch lx.peek() {
	case '/':
		for p := lx.peek(); p != '\n' && p != scanner.EOF; p = lx.peek() {
			if _, err := lx.next(); err != nil {
				return lexStateError(err)
			}
		}
		lx.ignore()
		return lexDefaultState

	case '*':
		if _, err := lx.next(); err != nil {
			return lexStateError(err)
		}
		for {
			r, err := lx.next()
			if err != nil {
				// unterminated block comment
				return lexEmit(TokenInvalid)
			}
			if r == '*' && lx.peek() == '/' {
				if _, err := lx.next(); err != nil {
					return lexStateError(err)
				}
				lx.ignore()
				return lexDefaultState
			}
		}
	}

	return lexEmit(TokenSlash)
}

func lexOneOrTwo(second rune, one TokenType, two TokenType) lexState {
	return func(lx *Lexer) lexState {
		if lx.peek() == second {
			if _, err := lx.next(); err != nil {
				return lexStateError(err)
			}
			return lexEmit(two)
		}
		return lexEmit(one)
	}
}

func lexDouble(second rune, tt TokenType) lexState {
	return func(lx *Lexer) lexState {
		if lx.peek() == second {
			if _, err := lx.next(); err != nil {
				return lexStateError(err)
			}
			return lexEmit(tt)
		}
		return lexReject
	}
}

// lexReject ends an invalid token with the rune it failed on, the scan goes
// on after that rune.
func lexReject(lx *Lexer) lexState {
	if lx.peek() != scanner.EOF {
		if _, err := lx.next(); err != nil {
			return lexStateError(err)
		}
	}
	lx.emit(TokenInvalid)
	return lexDefaultState
}

func lexEmit(tt TokenType) lexState {
	return func(lx *Lexer) lexState {
		lx.emit(tt)
		return lexDefaultState
	}
}

func lexStateError(err error) lexState {
	if err == io.EOF {
		return nil
	}
	return func(lx *Lexer) lexState {
		lx.lastErr = err
		return nil
	}
}

// Tokenize takes an array of bytes and returns all the tokens within it,
// including the final EOF token.
func Tokenize(in []byte) ([]Token, error) {
	tokens := []Token{}
	errCh := make(chan error, 1)

	lx := New(bytes.NewReader(in))

	go func() {
		errCh <- lx.Scan()
	}()

	for lx.Next() {
		tokens = append(tokens, lx.Token())
	}

	if err := <-errCh; err != nil {
		return nil, err
	}

	return tokens, nil
}
