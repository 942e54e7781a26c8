package lexer_test

import (
	"fmt"
	"log"

	"github.com/figueras/belchior/lexer"
)

func ExampleTokenize() {
	tokens, err := lexer.Tokenize([]byte(`print 1 + x;`))
	if err != nil {
		log.Fatal("lexer.Tokenize:", err)
	}

	for _, tok := range tokens {
		fmt.Println(tok)
	}

	// Output:
	// (:'print' "print" [1 1])
	// (:INT "1" [1 7])
	// (:'+' "+" [1 9])
	// (:ID "x" [1 11])
	// (:';' ";" [1 12])
	// (:EOF "" [1 13])
}
