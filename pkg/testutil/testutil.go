// Package testutil has fixtures shared by the package tests.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/bazelbuild/rules_go/go/tools/bazel"
	"github.com/stretchr/testify/require"
)

// MustPrepareTestFiles writes files into a new temporary directory and returns
// the directory and the absolute file names.  The returned func removes the
// directory.
func MustPrepareTestFiles(t *testing.T, files []testtools.FileSpec) (dir string, filenames []string, cleanup func()) {
	t.Helper()

	dir, err := bazel.NewTmpDir("classifier-resolver")
	require.NoError(t, err)

	return dir, MustWriteTestFiles(t, dir, files), func() {
		os.RemoveAll(dir)
	}
}

// MustWriteTestFiles writes files under dir.  A path ending in "/" makes a
// directory, a Symlink makes a link, and NotExist only reserves the name.
func MustWriteTestFiles(t *testing.T, dir string, files []testtools.FileSpec) []string {
	t.Helper()

	filenames := make([]string, 0, len(files))
	for _, file := range files {
		abs := filepath.Join(dir, filepath.FromSlash(file.Path))
		filenames = append(filenames, abs)

		if strings.HasSuffix(file.Path, "/") {
			require.NoError(t, os.MkdirAll(abs, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))

		switch {
		case file.NotExist:
		case file.Symlink != "":
			require.NoError(t, os.Symlink(file.Symlink, abs))
		default:
			require.NoError(t, os.WriteFile(abs, []byte(file.Content), 0o644))
		}
	}
	return filenames
}

// MustReadTestFile returns the content of name under dir.  On failure the
// files under dir are logged.
func MustReadTestFile(t *testing.T, dir, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		ListFiles(t, dir)
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

// ExpectError checks got against want by message and reports whether an
// error was expected, in which case the caller has nothing left to check.
func ExpectError(t *testing.T, want, got error) bool {
	t.Helper()

	if want == nil {
		require.NoError(t, got)
		return false
	}
	require.EqualError(t, got, want.Error())
	return true
}

// ListFiles logs the files under dir, relative to it.
func ListFiles(t *testing.T, dir string) {
	t.Helper()

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		if d.IsDir() {
			rel += "/"
		}
		t.Log(rel)
		return nil
	})
	if err != nil {
		t.Error(err)
	}
}
