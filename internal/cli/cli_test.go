package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figueras/belchior/internal/buildinfo"
	"github.com/figueras/belchior/internal/config"
	"github.com/figueras/belchior/internal/domain"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func closeStdin(t *testing.T) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, r.Close())

	stdin := os.Stdin
	os.Stdin = r
	t.Cleanup(func() { os.Stdin = stdin })
}

func TestRootCommand(t *testing.T) {
	src := writeFile(t, t.TempDir(), "main.bel", "func main() {\n    print \"hi\";\n}\n")

	stdout, stderr, err := execute(t, src)
	require.NoError(t, err)

	assert.Equal(t, "(start (declaration (funcDecl func main ( ) (block { (declaration (statement (printStmt print (expr (primary \"hi\")) ;))) }))) <EOF>)\n", stdout)
	assert.Empty(t, stderr)
}

func TestRootCommandWithoutStdin(t *testing.T) {
	src := writeFile(t, t.TempDir(), "main.bel", "var x;")
	closeStdin(t)

	stdout, stderr, err := execute(t, src)
	require.NoError(t, err)
	assert.Equal(t, "(start (declaration (varDecl var x ;)) <EOF>)\n", stdout)
	assert.Empty(t, stderr)
}

func TestRootCommandIgnoresWorkingDirConfig(t *testing.T) {
	contents := []string{
		"format: tree\ntokens: true\nstrict: true\n",
		"colour: yes\n",
		"format: [\n",
	}

	for _, content := range contents {
		dir := t.TempDir()
		writeFile(t, dir, config.FileName, content)
		writeFile(t, dir, "main.bel", "print 1 2;")
		chdir(t, dir)

		stdout, stderr, err := execute(t, "main.bel")
		require.NoError(t, err, "config: %q", content)
		assert.Equal(t, "(start (declaration (statement (printStmt print (expr (primary 1)) 2 ;))) <EOF>)\n", stdout)
		assert.Equal(t, "line 1:8 extraneous input '2' expecting ';'\n", stderr)
	}
}

func TestRootCommandSyntaxErrors(t *testing.T) {
	src := writeFile(t, t.TempDir(), "main.bel", "print ;")

	stdout, stderr, err := execute(t, src)
	require.NoError(t, err)
	assert.Equal(t, "(start (declaration (statement (printStmt print expr)) ;) <EOF>)\n", stdout)
	assert.Equal(t, "line 1:6 no viable alternative at input ';'\n", stderr)

	_, stderr, err = execute(t, "--strict", src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSyntax))
	assert.Contains(t, stderr, "no viable alternative")
}

func TestRootCommandMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.bel")

	stdout, stderr, err := execute(t, path)
	require.Error(t, err)

	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error:")
}

func TestRootCommandArgs(t *testing.T) {
	_, _, err := execute(t)
	assert.Error(t, err)

	_, _, err = execute(t, "a.bel", "b.bel")
	assert.Error(t, err)
}

func TestRootCommandVersion(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, buildinfo.String()+"\n", stdout)
}

func TestRootCommandConfig(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "main.bel", "var x;")
	cfg := writeFile(t, dir, "belchior.yaml", "format: tree\ntokens: true\n")

	stdout, _, err := execute(t, "--config", cfg, src)
	require.NoError(t, err)

	expected := "(:'var' \"var\" [1 1])\n" +
		"(:ID \"x\" [1 5])\n" +
		"(:';' \";\" [1 6])\n" +
		"(:EOF \"\" [1 7])\n" +
		"start\n" +
		"    declaration\n" +
		"        varDecl\n" +
		"            'var' \"var\" [1 1]\n" +
		"            ID \"x\" [1 5]\n" +
		"            ';' \";\" [1 6]\n" +
		"    EOF \"<EOF>\" [1 7]\n"
	assert.Equal(t, expected, stdout)

	// flags win over the config file
	stdout, _, err = execute(t, "--config", cfg, "--format", "lisp", "--tokens=false", src)
	require.NoError(t, err)
	assert.Equal(t, "(start (declaration (varDecl var x ;)) <EOF>)\n", stdout)
}

func TestRootCommandInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "main.bel", "var x;")
	cfg := writeFile(t, dir, "belchior.yaml", "format: xml\n")

	stdout, _, err := execute(t, "--config", cfg, src)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig))
	assert.Empty(t, stdout)

	_, _, err = execute(t, "--format", "json", src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfig))

	_, _, err = execute(t, "--config", filepath.Join(dir, "nope.yaml"), src)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestRootCommandGolden(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "main.bel", "return;")
	golden := writeFile(t, dir, "main.golden", "(start (declaration (statement (returnStmt return ;))) <EOF>)\n")

	_, _, err := execute(t, "--golden", golden, src)
	assert.NoError(t, err)

	golden = writeFile(t, dir, "main.golden", "(start <EOF>)\n")
	_, _, err = execute(t, "--golden", golden, src)
	assert.True(t, errors.Is(err, domain.ErrGoldenMismatch))
}

func TestRootCommandDebugLog(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "main.bel", "print 1;")
	logFile := filepath.Join(dir, "logs", "belchior.log")

	stdout, stderr, err := execute(t, "--debug", "--log-file", logFile, src)
	require.NoError(t, err)
	assert.NotEmpty(t, stdout)
	assert.Empty(t, stderr)

	b, err := os.ReadFile(logFile)
	require.NoError(t, err)
	for _, event := range []string{"logger.initialized", "config.loaded", "parse.start", "parse.done"} {
		assert.Contains(t, string(b), `"msg":"`+event+`"`)
	}
	assert.Contains(t, string(b), `"log_file":"`+logFile+`"`)
}
