package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("<TEI/>"), 0o644))
	}
}

func TestComponentFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"ParlaMint-RO.xml",
		"ParlaMint-RO.ana.xml",
		"2004/ParlaMint-RO-2004-12-20-CD.xml",
		"2004/ParlaMint-RO-2004-12-13-CD.xml",
		"2004/ParlaMint-RO-2004-12-13-CD.ana.xml",
		"2004/ParlaMint-RO-2004-12-13-CD.conllu",
		"2005/ParlaMint-RO-2005-02-01-CD.xml",
	)

	it := NewIterator(dir, "ParlaMint-RO.xml")
	files, err := it.ComponentFiles()
	require.NoError(t, err)

	// Sorted, root and derived variants excluded, year subdirs included.
	assert.Equal(t, []string{
		filepath.Join(dir, "2004", "ParlaMint-RO-2004-12-13-CD.xml"),
		filepath.Join(dir, "2004", "ParlaMint-RO-2004-12-20-CD.xml"),
		filepath.Join(dir, "2005", "ParlaMint-RO-2005-02-01-CD.xml"),
	}, files)
}

func TestAnnotatedFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"ParlaMint-RO.xml",
		"ParlaMint-RO-2004-12-13-CD.xml",
		"ParlaMint-RO-2004-12-13-CD.ana.xml",
		"ParlaMint-RO-2004-12-20-CD.xml",
	)

	it := NewIterator(dir, "ParlaMint-RO.xml")
	files, err := it.AnnotatedFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "ParlaMint-RO-2004-12-13-CD.ana.xml"),
	}, files)
}

func TestDerivedFileNames(t *testing.T) {
	assert.Equal(t, "a/s.ana.xml", AnnotatedFileFor("a/s.xml"))
	assert.Equal(t, "a/s.conllu", ConlluFileFor("a/s.xml"))
	assert.Equal(t, "a/s.xml", ComponentFileFor("a/s.ana.xml"))

	it := NewIterator("corpus", "ParlaMint-RO.xml")
	assert.Equal(t, filepath.Join("corpus", "ParlaMint-RO.xml"), it.RootFile())
	assert.Equal(t, filepath.Join("corpus", "ParlaMint-RO.ana.xml"), it.AnnotatedRootFile())
}

func TestSessionFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"2004/s-13_12.html",
		"2004/s-06_12.htm",
		"2004/notes.txt",
	)

	files, err := SessionFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "2004", "s-06_12.htm"),
		filepath.Join(dir, "2004", "s-13_12.html"),
	}, files)
}
