package helpers_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTempFile creates a temporary file in the test's temporary directory,
// and automatically removes it when the test is done.
func CreateTempFile(t *testing.T, fileName string) *os.File {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), fileName)
	require.NoError(t, err)

	t.Cleanup(func() {
		os.Remove(tmpFile.Name())
	})

	return tmpFile
}

// CreateTempFileWithContents creates a temporary file in the test's temporary
// directory, writes the given content to it, and automatically removes it when
// the test is done.
func CreateTempFileWithContents(t *testing.T, content string) string {
	t.Helper()

	tmpFile := CreateTempFile(t, "truth-table-test-*")

	_, err := tmpFile.Write([]byte(content))
	require.NoError(t, err)

	err = tmpFile.Close()
	require.NoError(t, err)

	return tmpFile.Name()
}

// TempPath returns a path in the test's temporary directory that doesn't
// exist yet, for code under test to create.
func TempPath(t *testing.T, fileName string) string {
	t.Helper()

	return filepath.Join(t.TempDir(), fileName)
}

// ReadFile returns the contents of the file at path, failing the test if it
// can't be read.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(content)
}
