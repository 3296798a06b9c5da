package handler

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func openCSV(content string) memFile {
	return memFile{bytes.NewReader([]byte(content))}
}

func TestCSVRowsMapsHeaderToColumns(t *testing.T) {
	rows, err := csvRows(openCSV("full_name,email\nAlice Smith,alice@example.org\nBob Jones,bob@example.org\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Alice Smith", rows[0]["full_name"])
	assert.Equal(t, "alice@example.org", rows[0]["email"])
	assert.Equal(t, "Bob Jones", rows[1]["full_name"])
}

func TestCSVRowsStripsBOM(t *testing.T) {
	rows, err := csvRows(openCSV("\uFEFFfull_name,email\nAlice Smith,alice@example.org\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Alice Smith", rows[0]["full_name"])
}

func TestCSVRowsToleratesShortRecords(t *testing.T) {
	rows, err := csvRows(openCSV("full_name,email,phone\nAlice Smith,alice@example.org\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "alice@example.org", rows[0]["email"])
	_, hasPhone := rows[0]["phone"]
	assert.False(t, hasPhone)
}

func TestCSVRowsEmptyFile(t *testing.T) {
	rows, err := csvRows(openCSV(""))
	require.NoError(t, err)
	assert.Nil(t, rows)
}
