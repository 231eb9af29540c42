package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	files := []GeneratedFile{
		NewFile("ops.expanded.rs", "impl A for B {}\n", false),
		NewFile(filepath.Join("nested", "lib.expanded.rs"), "mod x {}\n", true),
	}

	require.NoError(t, WriteFiles(files, dir))

	got, err := os.ReadFile(filepath.Join(dir, "ops.expanded.rs"))
	require.NoError(t, err)
	assert.Equal(t, "impl A for B {}\n", string(got))

	got, err = os.ReadFile(filepath.Join(dir, "nested", "lib.expanded.rs"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), BannerLine+"\n\n"))
	assert.True(t, strings.HasSuffix(string(got), "mod x {}\n"))

	info, err := os.Stat(filepath.Join(dir, "ops.expanded.rs"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm()&os.FileMode(filePerm))
}

func TestWriteFiles_DirIsFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, filePerm))

	err := WriteFiles([]GeneratedFile{NewFile("a.rs", "", false)}, blocker)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output directory")
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("src", "ops.expanded.rs"), OutputPath(filepath.Join("src", "ops.rs"), "", "ops.expanded.rs"))
	assert.Equal(t, filepath.Join("gen", "ops.expanded.rs"), OutputPath(filepath.Join("src", "ops.rs"), "gen", "ops.expanded.rs"))
}
