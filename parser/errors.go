package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/figueras/belchior/lexer"
)

var (
	ErrUnexpectedEOF   = errors.New("unexpected EOF")
	ErrUnexpectedToken = errors.New("unexpected token")
)

// SyntaxError describes one problem reported while parsing.
type SyntaxError struct {
	Line   int
	Column int // from 0
	Token  *lexer.Token
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d:%d %s", e.Line, e.Column, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	if e.Token != nil && e.Token.Is(lexer.TokenEOF) {
		return ErrUnexpectedEOF
	}
	return ErrUnexpectedToken
}

// SyntaxErrors is the list of errors reported during a parse, in order.
type SyntaxErrors []*SyntaxError

func (e SyntaxErrors) Error() string {
	lines := make([]string, 0, len(e))
	for i := range e {
		lines = append(lines, e[i].Error())
	}
	return strings.Join(lines, "\n")
}

func (e SyntaxErrors) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for i := range e {
		errs = append(errs, e[i])
	}
	return errs
}
