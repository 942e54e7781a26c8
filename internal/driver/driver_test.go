package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figueras/belchior/internal/domain"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "main.bel")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func run(t *testing.T, opts Options) (*Result, string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	opts.Stdout = &stdout
	opts.Stderr = &stderr

	res, err := Run(context.Background(), opts)
	return res, stdout.String(), stderr.String(), err
}

func TestRun(t *testing.T) {
	path := writeSource(t, `var x = 1;`)

	res, stdout, stderr, err := run(t, Options{Path: path})
	require.NoError(t, err)

	assert.Equal(t, "(start (declaration (varDecl var x = (expr (primary 1)) ;)) <EOF>)\n", stdout)
	assert.Empty(t, stderr)
	assert.Empty(t, res.SyntaxErrors)
	assert.Equal(t, 6, res.Tokens)
	assert.Equal(t, "start", res.Tree.Rule())
}

func TestRunWithoutStdin(t *testing.T) {
	path := writeSource(t, `print 1;`)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, r.Close())

	stdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = stdin }()

	res, stdout, stderr, err := run(t, Options{Path: path})
	require.NoError(t, err)

	assert.Equal(t, "(start (declaration (statement (printStmt print (expr (primary 1)) ;))) <EOF>)\n", stdout)
	assert.Empty(t, stderr)
	assert.Empty(t, res.SyntaxErrors)
}

func TestRunSyntaxErrors(t *testing.T) {
	path := writeSource(t, `var x = 1`)

	res, stdout, stderr, err := run(t, Options{Path: path})
	require.NoError(t, err)

	assert.Equal(t, "(start (declaration (varDecl var x = (expr (primary 1)) <missing ';'>)) <EOF>)\n", stdout)
	assert.Equal(t, "line 1:9 missing ';' at '<EOF>'\n", stderr)
	assert.Len(t, res.SyntaxErrors, 1)
}

func TestRunStrict(t *testing.T) {
	path := writeSource(t, `print 1 2;`)

	res, stdout, _, err := run(t, Options{Path: path, Strict: true})
	require.Error(t, err)

	assert.True(t, domain.IsKind(err, domain.KindSyntax))
	assert.True(t, errors.Is(err, domain.ErrSyntax))
	assert.NotEmpty(t, stdout)
	assert.Len(t, res.SyntaxErrors, 1)

	path = writeSource(t, `print 1;`)
	_, _, _, err = run(t, Options{Path: path, Strict: true})
	assert.NoError(t, err)
}

func TestRunMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.bel")

	res, stdout, stderr, err := run(t, Options{Path: path})
	require.Error(t, err)

	assert.Nil(t, res)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), path)
}

func TestRunDirectory(t *testing.T) {
	res, stdout, _, err := run(t, Options{Path: t.TempDir()})
	require.Error(t, err)

	assert.Nil(t, res)
	assert.Empty(t, stdout)
	assert.True(t, domain.IsKind(err, domain.KindRead))
}

func TestRunTokens(t *testing.T) {
	path := writeSource(t, `var x;`)

	_, stdout, _, err := run(t, Options{Path: path, Tokens: true})
	require.NoError(t, err)

	expected := "(:'var' \"var\" [1 1])\n" +
		"(:ID \"x\" [1 5])\n" +
		"(:';' \";\" [1 6])\n" +
		"(:EOF \"\" [1 7])\n" +
		"(start (declaration (varDecl var x ;)) <EOF>)\n"
	assert.Equal(t, expected, stdout)
}

func TestRunFormats(t *testing.T) {
	path := writeSource(t, `var x;`)

	_, stdout, _, err := run(t, Options{Path: path, Format: domain.FormatTree})
	require.NoError(t, err)

	expected := "start\n" +
		"    declaration\n" +
		"        varDecl\n" +
		"            'var' \"var\" [1 1]\n" +
		"            ID \"x\" [1 5]\n" +
		"            ';' \";\" [1 6]\n" +
		"    EOF \"<EOF>\" [1 7]\n"
	assert.Equal(t, expected, stdout)

	_, stdout, _, err = run(t, Options{Path: path, Format: domain.FormatTree, Color: true})
	require.NoError(t, err)
	assert.Contains(t, stdout, "varDecl")
	assert.Contains(t, stdout, `ID "x"`)

	_, stdout, _, err = run(t, Options{Path: path, Format: domain.FormatYAML})
	require.NoError(t, err)
	assert.Contains(t, stdout, "rule: start\n")
	assert.Contains(t, stdout, "rule: varDecl")
	assert.Contains(t, stdout, "<EOF>")

	_, _, _, err = run(t, Options{Path: path, Format: "xml"})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindOutput))
}

func TestRunGolden(t *testing.T) {
	path := writeSource(t, `print 1;`)
	golden := filepath.Join(t.TempDir(), "main.golden")

	require.NoError(t, os.WriteFile(golden, []byte("(start (declaration (statement (printStmt print (expr (primary 1)) ;))) <EOF>)\n"), 0o600))

	_, _, _, err := run(t, Options{Path: path, Golden: golden})
	assert.NoError(t, err)

	require.NoError(t, os.WriteFile(golden, []byte("(start <EOF>)\n"), 0o600))

	_, stdout, _, err := run(t, Options{Path: path, Golden: golden})
	require.Error(t, err)
	assert.NotEmpty(t, stdout)
	assert.True(t, errors.Is(err, domain.ErrGoldenMismatch))
	assert.True(t, domain.IsKind(err, domain.KindOutput))

	_, _, _, err = run(t, Options{Path: path, Golden: golden + ".missing"})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestRunCanceled(t *testing.T) {
	path := writeSource(t, `print 1;`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	res, err := Run(ctx, Options{Path: path, Stdout: &stdout})

	assert.Nil(t, res)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, stdout.String())
}
