// Package corpus enumerates the files of a TEI corpus directory and
// derives the output names of annotated variants. Iteration order is
// an explicit contract: paths are sorted lexicographically, never left
// to directory enumeration order.
package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Suffixes of derived files.
const (
	AnnotatedSuffix = ".ana.xml"
	ConlluSuffix    = ".conllu"
	ComponentSuffix = ".xml"
)

// Iterator walks a corpus directory containing one root file and many
// component session files, possibly nested under year subdirectories.
type Iterator struct {
	dir      string
	rootFile string
}

// NewIterator creates an iterator over the corpus in dir with the
// given root file name.
func NewIterator(dir, rootFile string) *Iterator {
	return &Iterator{dir: dir, rootFile: rootFile}
}

// Dir returns the corpus directory.
func (it *Iterator) Dir() string {
	return it.dir
}

// RootFile returns the path of the corpus root file.
func (it *Iterator) RootFile() string {
	return filepath.Join(it.dir, it.rootFile)
}

// AnnotatedRootFile returns the path of the annotated corpus root file.
func (it *Iterator) AnnotatedRootFile() string {
	return strings.TrimSuffix(it.RootFile(), ComponentSuffix) + AnnotatedSuffix
}

// ComponentFiles returns the component session files of the corpus in
// sorted order, excluding the root file and annotated variants.
func (it *Iterator) ComponentFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(it.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.HasSuffix(name, ComponentSuffix) || strings.HasSuffix(name, AnnotatedSuffix) {
			return nil
		}
		if name == it.rootFile || name == filepath.Base(it.AnnotatedRootFile()) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk corpus dir %s: %w", it.dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// AnnotatedFiles returns the annotated component files of the corpus
// in sorted order.
func (it *Iterator) AnnotatedFiles() ([]string, error) {
	components, err := it.ComponentFiles()
	if err != nil {
		return nil, err
	}
	var files []string
	for _, component := range components {
		annotated := AnnotatedFileFor(component)
		if _, err := os.Stat(annotated); err == nil {
			files = append(files, annotated)
		}
	}
	return files, nil
}

// AnnotatedFileFor returns the annotated variant name of a component
// file.
func AnnotatedFileFor(componentFile string) string {
	return strings.TrimSuffix(componentFile, ComponentSuffix) + AnnotatedSuffix
}

// ConlluFileFor returns the token-stream file name of a component file.
func ConlluFileFor(componentFile string) string {
	return strings.TrimSuffix(componentFile, ComponentSuffix) + ConlluSuffix
}

// ComponentFileFor returns the component file an annotated file was
// derived from.
func ComponentFileFor(annotatedFile string) string {
	return strings.TrimSuffix(annotatedFile, AnnotatedSuffix) + ComponentSuffix
}

// SessionFiles returns the HTML transcript files under dir in sorted
// order.
func SessionFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.Contains(strings.ToLower(filepath.Ext(path)), "htm") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk transcript dir %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
