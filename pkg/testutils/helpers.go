// Package testutils holds fixtures shared by package tests.
package testutils

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// CreateTestFilesWithContent writes each named file under dir
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// CreateTestDocuments writes a small set of drop fixtures: two plain text
// documents, one empty, and one that is not text.
func CreateTestDocuments(t *testing.T, dir string) {
	CreateTestFilesWithContent(t, dir, map[string]string{
		"short.txt": "the quick brown fox",
		"lines.txt": "one two\nthree\n\nfour",
		"empty.txt": "",
		"paper.pdf": "%PDF-1.4",
	})
}

// Words returns n numbered words joined by spaces: "w0 w1 ..."
func Words(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("w")
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}

// StripANSI removes terminal escape sequences from rendered output
func StripANSI(str string) string {
	return ansi.Strip(str)
}
