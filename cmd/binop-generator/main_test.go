package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binop-generator/internal/gen"
)

const annotated = `use std::ops::Mul;

#[binop(commute)]
impl Mul<Cat> for Dog {
    type Output = Fish;

    fn mul(self, rhs: Cat) -> Self::Output {
        Fish::new(self, rhs)
    }
}
`

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestExpand_NextToInput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "binop.yaml", "output:\n  suffix: .gen.rs\n  header: true\n")
	input := writeFile(t, dir, "lib.rs", annotated)

	_, _, err := run(t, "expand", input)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "lib.gen.rs"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(got), gen.BannerLine+"\n\nuse std::ops::Mul;\n"), string(got))
	assert.Contains(t, string(got), "impl Mul<Dog> for Cat {")
	assert.NotContains(t, string(got), "#[binop")

	src, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, annotated, string(src))
}

func TestExpand_OutDirAndSuffix(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "ops.rs", annotated)
	out := filepath.Join(dir, "generated")

	_, _, err := run(t, "expand", "-o", out, "--suffix", "_ops.rs", input)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(out, "ops_ops.rs"))
	require.NoError(t, err)
}

func TestExpand_Stdout(t *testing.T) {
	input := writeFile(t, t.TempDir(), "lib.rs", annotated)

	stdout, _, err := run(t, "expand", "--stdout", input)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(stdout, "impl Mul<"))
	assert.True(t, strings.HasPrefix(stdout, "use std::ops::Mul;\n"))
}

func TestExpand_Write(t *testing.T) {
	input := writeFile(t, t.TempDir(), "lib.rs", annotated)

	_, _, err := run(t, "expand", "--write", input)
	require.NoError(t, err)

	got, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(got), "impl Mul<"))
	assert.NotContains(t, string(got), gen.BannerLine)
}

func TestExpand_SkipsUnannotated(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "plain.rs", "fn main() {}\n")

	_, _, err := run(t, "expand", input)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "plain.expanded.rs"))
	assert.True(t, os.IsNotExist(err))
}

func TestExpand_ErrorsWriteNothing(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.rs", annotated)
	bad := writeFile(t, dir, "bad.rs", strings.Replace(annotated, "commute", "comute", 1))

	_, stderr, err := run(t, "expand", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 error(s); no files written")
	assert.Contains(t, stderr, "bad.rs:3:9: error[E-OPTION]: unknown option `comute`")
	assert.Contains(t, stderr, "(did you mean `commute`?)")

	_, err = os.Stat(filepath.Join(dir, "good.expanded.rs"))
	assert.True(t, os.IsNotExist(err))
}

func TestExpand_Trace(t *testing.T) {
	input := writeFile(t, t.TempDir(), "lib.rs", annotated)

	_, stderr, err := run(t, "expand", "--trace", "--stdout", input)
	require.NoError(t, err)
	assert.Contains(t, stderr, "binop(commute, dev_print)")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.rs", annotated)
	noop := writeFile(t, dir, "noop.rs", strings.Replace(annotated, "#[binop(commute)]", "#[binop]", 1))

	stdout, stderr, err := run(t, "check", good, noop)
	require.NoError(t, err)
	assert.Equal(t, "checked 2 file(s), 2 annotated item(s): 0 error(s), 1 warning(s)\n", stdout)
	assert.Contains(t, stderr, "noop.rs:3:1: warning[W-NOOP]")

	_, err = os.Stat(filepath.Join(dir, "good.expanded.rs"))
	assert.True(t, os.IsNotExist(err))
}

func TestCheck_Fails(t *testing.T) {
	bad := writeFile(t, t.TempDir(), "bad.rs", strings.Replace(annotated, "fn mul(self,", "fn mul(&self,", 1))

	stdout, stderr, err := run(t, "check", bad)
	require.Error(t, err)
	assert.Equal(t, "checked 1 file(s), 0 annotated item(s): 1 error(s), 0 warning(s)\n", stdout)
	assert.Contains(t, stderr, "error[E-GRAMMAR]: the receiver must be `self` taken by value")
}

func TestRead(t *testing.T) {
	input := writeFile(t, t.TempDir(), "lib.rs", annotated)

	stdout, _, err := run(t, "read", input)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(stdout, "impl Mul<"))
	assert.NotContains(t, stdout, "#[binop")
}

func TestConfigFlag_TOML(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "custom.toml", "[attributes]\nexpand = [\"ops\"]\n")
	input := writeFile(t, dir, "lib.rs", strings.Replace(annotated, "#[binop(commute)]", "#[ops(commute)]", 1))

	stdout, _, err := run(t, "expand", "--config", cfg, "--stdout", input)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(stdout, "impl Mul<"))

	_, _, err = run(t, "expand", "--config", filepath.Join(dir, "missing.toml"), input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestExamples(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.rs"))
	require.NoError(t, err)
	require.Len(t, files, 3)

	args := append([]string{"check", "--config", filepath.Join("..", "..", "examples", "binop.yaml")}, files...)

	stdout, stderr, err := run(t, args...)
	require.NoError(t, err, stderr)
	assert.Equal(t, "checked 3 file(s), 3 annotated item(s): 0 error(s), 0 warning(s)\n", stdout)
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "binop.toml", "[output]\nsuffix = \".ops.rs\"\nheader = true\n")

	stdout, _, err := run(t, "config", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "suffix: .ops.rs")
	assert.Contains(t, stdout, "header: true")
	assert.Contains(t, stdout, "- binop")
	assert.Contains(t, stdout, "- read_binop_impl")
}

func TestExpand_OutputCollision(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b"), 0o755))

	first := writeFile(t, filepath.Join(dir, "a"), "lib.rs", annotated)
	second := writeFile(t, filepath.Join(dir, "b"), "lib.rs", annotated)
	out := filepath.Join(dir, "out")

	_, stderr, err := run(t, "expand", "-o", out, first, second)
	require.Error(t, err)
	assert.Contains(t, stderr, "error[E-OUTPUT]: output "+filepath.Join(out, "lib.expanded.rs")+" is also produced by "+first)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestExpand_StdoutNothingOnError(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.rs", annotated)
	bad := writeFile(t, dir, "bad.rs", strings.Replace(annotated, "commute", "comute", 1))

	stdout, _, err := run(t, "expand", "--stdout", good, bad)
	require.Error(t, err)
	assert.Empty(t, stdout)
}

func TestCheck_DebugShowsInfos(t *testing.T) {
	input := writeFile(t, t.TempDir(), "lib.rs", annotated)

	_, stderr, err := run(t, "check", input)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "info[I-EXPANDED]")

	_, stderr, err = run(t, "check", "--debug", input)
	require.NoError(t, err)
	assert.Contains(t, stderr, "lib.rs:3:1: info[I-EXPANDED]: `#[binop]` expanded into 2 implementation(s)")
}

func TestRead_Error(t *testing.T) {
	input := writeFile(t, t.TempDir(), "lib.rs", strings.Replace(annotated, "fn mul(self,", "fn mul(&self,", 1))

	stdout, _, err := run(t, "read", input)
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, err.Error(), "error[E-GRAMMAR]: the receiver must be `self` taken by value")
}
