package lexer

// TokenType represents all the possible types of a lexical unit
type TokenType uint8

// List of types of lexical units
const (
	TokenInvalid TokenType = iota // Unrecognized input
	TokenEOF                      // End of file

	TokenID     // Identifier: [a-zA-Z_][a-zA-Z0-9_]*
	TokenInt    // Integer: [0-9]+
	TokenFloat  // Floating point: [0-9]+ "." [0-9]+
	TokenString // Double quoted string

	TokenVar    // "var"
	TokenFunc   // "func"
	TokenReturn // "return"
	TokenIf     // "if"
	TokenElse   // "else"
	TokenWhile  // "while"
	TokenPrint  // "print"
	TokenTrue   // "true"
	TokenFalse  // "false"
	TokenNil    // "nil"

	TokenPlus         // "+"
	TokenMinus        // "-"
	TokenStar         // "*"
	TokenSlash        // "/"
	TokenPercent      // "%"
	TokenAssign       // "="
	TokenEqual        // "=="
	TokenNotEqual     // "!="
	TokenLess         // "<"
	TokenLessEqual    // "<="
	TokenGreater      // ">"
	TokenGreaterEqual // ">="
	TokenAnd          // "&&"
	TokenOr           // "||"
	TokenBang         // "!"

	TokenOpenParen  // "("
	TokenCloseParen // ")"
	TokenOpenBrace  // "{"
	TokenCloseBrace // "}"
	TokenComma      // ","
	TokenSemicolon  // ";"
)

// Single-rune tokens that never start a longer token.
var tokenValues = map[TokenType][]rune{
	TokenPlus:       {'+'},
	TokenMinus:      {'-'},
	TokenStar:       {'*'},
	TokenPercent:    {'%'},
	TokenOpenParen:  {'('},
	TokenCloseParen: {')'},
	TokenOpenBrace:  {'{'},
	TokenCloseBrace: {'}'},
	TokenComma:      {','},
	TokenSemicolon:  {';'},
}

var (
	letters    = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_")
	digits     = []rune("0123456789")
	whitespace = []rune(" \f\t\r\n")
)

var keywords = map[string]TokenType{
	"var":    TokenVar,
	"func":   TokenFunc,
	"return": TokenReturn,
	"if":     TokenIf,
	"else":   TokenElse,
	"while":  TokenWhile,
	"print":  TokenPrint,
	"true":   TokenTrue,
	"false":  TokenFalse,
	"nil":    TokenNil,
}

// Literal tokens are displayed quoted, like they appear in the grammar.
var tokenNames = map[TokenType]string{
	TokenInvalid: "invalid",
	TokenEOF:     "EOF",

	TokenID:     "ID",
	TokenInt:    "INT",
	TokenFloat:  "FLOAT",
	TokenString: "STRING",

	TokenVar:    "'var'",
	TokenFunc:   "'func'",
	TokenReturn: "'return'",
	TokenIf:     "'if'",
	TokenElse:   "'else'",
	TokenWhile:  "'while'",
	TokenPrint:  "'print'",
	TokenTrue:   "'true'",
	TokenFalse:  "'false'",
	TokenNil:    "'nil'",

	TokenPlus:         "'+'",
	TokenMinus:        "'-'",
	TokenStar:         "'*'",
	TokenSlash:        "'/'",
	TokenPercent:      "'%'",
	TokenAssign:       "'='",
	TokenEqual:        "'=='",
	TokenNotEqual:     "'!='",
	TokenLess:         "'<'",
	TokenLessEqual:    "'<='",
	TokenGreater:      "'>'",
	TokenGreaterEqual: "'>='",
	TokenAnd:          "'&&'",
	TokenOr:           "'||'",
	TokenBang:         "'!'",

	TokenOpenParen:  "'('",
	TokenCloseParen: "')'",
	TokenOpenBrace:  "'{'",
	TokenCloseBrace: "'}'",
	TokenComma:      "','",
	TokenSemicolon:  "';'",
}

func (tt TokenType) String() string {
	if v, ok := tokenNames[tt]; ok {
		return v
	}
	return tokenNames[TokenInvalid]
}

// IsKeyword returns true for reserved words.
func (tt TokenType) IsKeyword() bool {
	return tt >= TokenVar && tt <= TokenNil
}

// Lookup returns the keyword type of the given identifier, or TokenID.
func Lookup(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return TokenID
}

func isTokenType(tt TokenType) func(r rune) bool {
	return isOneOf(tokenValues[tt])
}

func isOneOf(set []rune) func(r rune) bool {
	return func(r rune) bool {
		for _, v := range set {
			if v == r {
				return true
			}
		}
		return false
	}
}

var (
	isLetter     = isOneOf(letters)
	isDigit      = isOneOf(digits)
	isWhitespace = isOneOf(whitespace)
)

func isIdentifierBody(r rune) bool {
	return isLetter(r) || isDigit(r)
}
