package parser

import (
	"fmt"
	"io"

	"github.com/figueras/belchior/lexer"
)

// ErrorListener receives the syntax errors reported by the parser. Lines
// count from 1, columns from 0.
type ErrorListener interface {
	SyntaxError(offending *lexer.Token, line int, column int, msg string)
}

// ConsoleErrorListener writes every error as "line L:C message".
type ConsoleErrorListener struct {
	w io.Writer
}

// NewConsoleErrorListener creates a listener writing to w, usually stderr.
func NewConsoleErrorListener(w io.Writer) *ConsoleErrorListener {
	return &ConsoleErrorListener{w: w}
}

func (l *ConsoleErrorListener) SyntaxError(_ *lexer.Token, line int, column int, msg string) {
	fmt.Fprintf(l.w, "line %d:%d %s\n", line, column, msg)
}

// ErrorCollector keeps the reported errors in memory.
type ErrorCollector struct {
	Errors SyntaxErrors
}

func (c *ErrorCollector) SyntaxError(offending *lexer.Token, line int, column int, msg string) {
	c.Errors = append(c.Errors, &SyntaxError{
		Line:   line,
		Column: column,
		Token:  offending,
		Msg:    msg,
	})
}

// Err returns the collected errors, or nil if there were none.
func (c *ErrorCollector) Err() error {
	if len(c.Errors) == 0 {
		return nil
	}
	return c.Errors
}
