package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optiprompt/optiprompt/internal/domain"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "subject,body,category\nhello,win money now,spam\nmeeting,see you at 3,ham\n")

	header, rows, err := LoadCSV(path)
	require.NoError(t, err)
	require.Equal(t, []string{"subject", "body", "category"}, header)
	require.Len(t, rows, 2)
	require.Equal(t, "win money now", rows[0]["body"])
	require.Equal(t, "ham", rows[1]["category"])
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	header, rows, err := LoadCSV(path)
	require.NoError(t, err)
	require.Empty(t, header)
	require.Empty(t, rows)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, _, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrIO))
}

func TestLoadCSVRaggedRows(t *testing.T) {
	path := writeCSV(t, "a,b\n1,2,3\n")

	_, _, err := LoadCSV(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrFormat))
}

func TestLoadCSVDuplicateHeader(t *testing.T) {
	path := writeCSV(t, "a,a\n1,2\n")

	_, _, err := LoadCSV(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrFormat))
}

func TestLoadCSVQuotedCells(t *testing.T) {
	path := writeCSV(t, "text,label\n\"one, two\",x\n")

	_, rows, err := LoadCSV(path)
	require.NoError(t, err)
	require.Equal(t, "one, two", rows[0]["text"])
}
