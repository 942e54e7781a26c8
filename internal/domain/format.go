package domain

import (
	"fmt"
	"strings"
)

// Format selects how the parse tree is written.
type Format string

const (
	FormatLISP Format = "lisp"
	FormatTree Format = "tree"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats, default first.
var Formats = []Format{FormatLISP, FormatTree, FormatYAML}

// ParseFormat validates a format name, case insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q", s)
}
