// Package driver runs the read, lex, parse and print pipeline over a single
// source file.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/figueras/belchior/internal/domain"
	"github.com/figueras/belchior/internal/logger"
	"github.com/figueras/belchior/lexer"
	"github.com/figueras/belchior/parser"
	"github.com/figueras/belchior/tree"
)

type Options struct {
	Path   string
	Format domain.Format

	// Tokens prints the token stream before the tree.
	Tokens bool
	Color  bool
	Strict bool

	// Golden is a file the output must be equal to, ignored when empty.
	Golden string

	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

type Result struct {
	Tree         *tree.Node
	SyntaxErrors parser.SyntaxErrors
	Tokens       int
}

// Run parses the file at opts.Path starting at the "start" rule and writes
// the tree to opts.Stdout. Syntax errors go to opts.Stderr and only make Run
// fail in strict mode. Nothing is written when the file cannot be read.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.L()
	}
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	format := opts.Format
	if format == "" {
		format = domain.FormatLISP
	}

	src, err := readFile("driver.read", opts.Path)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	log.Debug("parse.start", "path", opts.Path, "bytes", len(src), "format", string(format))

	var out bytes.Buffer

	if opts.Tokens {
		tokens, err := lexer.Tokenize(src)
		if err != nil {
			return nil, err
		}
		for _, tok := range tokens {
			fmt.Fprintln(&out, tok.String())
		}
	}

	p := parser.New(bytes.NewReader(src))

	collector := &parser.ErrorCollector{}
	p.RemoveErrorListeners()
	p.AddErrorListener(parser.NewConsoleErrorListener(stderr))
	p.AddErrorListener(collector)

	stop := context.AfterFunc(ctx, p.Stop)
	err = p.Parse()
	stop()

	if err != nil {
		if errors.Is(err, lexer.ErrForceStopped) && ctx.Err() != nil {
			return nil, fmt.Errorf("driver.run: %w", ctx.Err())
		}
		return nil, err
	}

	res := &Result{
		Tree:         p.Tree(),
		SyntaxErrors: collector.Errors,
		Tokens:       p.TokenCount(),
	}

	log.Debug("parse.done",
		"path", opts.Path,
		"tokens", res.Tokens,
		"syntax_errors", p.NumberOfSyntaxErrors(),
		"duration", time.Since(started),
	)

	if err := render(&out, res.Tree, format, opts.Color); err != nil {
		return res, &domain.OpError{Op: "driver.render", Kind: domain.KindOutput, Err: err}
	}

	if _, err := stdout.Write(out.Bytes()); err != nil {
		return res, &domain.OpError{Op: "driver.write", Kind: domain.KindOutput, Err: err}
	}

	if opts.Golden != "" {
		want, err := readFile("driver.golden", opts.Golden)
		if err != nil {
			return res, err
		}
		if !bytes.Equal(want, out.Bytes()) {
			log.Debug("golden.mismatch", "path", opts.Golden)
			return res, &domain.OpError{
				Op:   "driver.golden",
				Kind: domain.KindOutput,
				Path: opts.Golden,
				Err:  domain.ErrGoldenMismatch,
			}
		}
	}

	if opts.Strict && len(res.SyntaxErrors) > 0 {
		return res, &domain.OpError{
			Op:   "driver.run",
			Kind: domain.KindSyntax,
			Path: opts.Path,
			Err:  fmt.Errorf("%d syntax error(s): %w", len(res.SyntaxErrors), domain.ErrSyntax),
		}
	}

	return res, nil
}

func render(w io.Writer, root *tree.Node, format domain.Format, color bool) error {
	switch format {
	case domain.FormatLISP:
		_, err := fmt.Fprintf(w, "%s\n", tree.Encode(root))
		return err

	case domain.FormatTree:
		var th *tree.Theme
		if color {
			th = tree.DefaultTheme()
		}
		return tree.Fprint(w, root, th)

	case domain.FormatYAML:
		b, err := tree.EncodeYAML(root)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}

	return fmt.Errorf("unsupported format %q", format)
}

func readFile(op string, path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err == nil {
		return b, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return nil, &domain.OpError{
			Op:   op,
			Kind: domain.KindNotFound,
			Path: path,
			Err:  errors.Join(err, domain.ErrNotFound),
		}
	}
	return nil, &domain.OpError{
		Op:   op,
		Kind: domain.KindRead,
		Path: path,
		Err:  err,
	}
}
