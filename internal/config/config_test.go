package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "1", c.Version)
	assert.Equal(t, []string{"binop"}, c.Attributes.Expand)
	assert.Equal(t, []string{"read_binop_impl"}, c.Attributes.Read)
	assert.Equal(t, ".expanded.rs", c.Output.Suffix)
	assert.Empty(t, c.Output.Dir)
	assert.False(t, c.Output.Header)
	assert.False(t, c.Trace)
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
attributes:
  expand: [binop, xops_binop]
output:
  dir: generated
  header: true
trace: true
`)

	c, err := Parse(data, ".yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"binop", "xops_binop"}, c.Attributes.Expand)
	assert.Equal(t, []string{"read_binop_impl"}, c.Attributes.Read)
	assert.Equal(t, "generated", c.Output.Dir)
	assert.Equal(t, ".expanded.rs", c.Output.Suffix)
	assert.True(t, c.Output.Header)
	assert.True(t, c.Trace)
}

func TestParse_TOML(t *testing.T) {
	data := []byte(`
version = "1"

[attributes]
read = ["read_impl"]

[output]
suffix = ".gen.rs"
`)

	c, err := Parse(data, ".toml")
	require.NoError(t, err)

	assert.Equal(t, []string{"binop"}, c.Attributes.Expand)
	assert.Equal(t, []string{"read_impl"}, c.Attributes.Read)
	assert.Equal(t, ".gen.rs", c.Output.Suffix)
}

func TestParse_Empty(t *testing.T) {
	c, err := Parse(nil, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParse_UnknownKeys(t *testing.T) {
	_, err := Parse([]byte("outptu:\n  dir: x\n"), ".yml")
	require.Error(t, err)

	_, err = Parse([]byte("[outptu]\ndir = \"x\"\n"), ".toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outptu")
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	nested := filepath.Join(root, "crates", "ops", "src")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, c, err := Find(nested)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Nil(t, c)

	cfgPath := filepath.Join(root, "crates", "binop.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("trace = true\n"), 0o644))

	path, c, err = Find(nested)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
	require.NotNil(t, c)
	assert.True(t, c.Trace)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "binop.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("attributes: [\n"), 0o644))

	_, err = LoadFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}

func TestOutputName(t *testing.T) {
	c := Default()
	assert.Equal(t, "ops.expanded.rs", c.OutputName("src/ops.rs"))

	c.Output.Suffix = ".gen.rs"
	assert.Equal(t, "lib.gen.rs", c.OutputName("lib.rs"))
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	c, err := Parse(data, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}
