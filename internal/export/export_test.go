package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullRecord = `{
	"ISBN": "9788203364881",
	"TITLE": "Sofies verden",
	"AUTHORS": "Jostein Gaarder",
	"TIMESTAMP": "2024-11-02 14:30:00",
	"MESSAGE": "Data fetched successfully",
	"SITES": {
		"ark.no": {"TITLE": "Sofies verden", "AUTHORS": "Jostein Gaarder", "PRICE": 249, "PRODUCT_URL": "https://www.ark.no/produkt/x"},
		"norli.no": {"TITLE": "Sofies verden", "AUTHORS": "Jostein Gaarder", "PRICE": 229, "PRODUCT_URL": "https://www.norli.no/y"},
		"adlibris.no": {"TITLE": "Sofies verden : roman", "AUTHORS": "Jostein Gaarder", "PRICE": 199, "PRODUCT_URL": "https://www.adlibris.com/no/bok/z"}
	}
}`

const partialRecord = `{
	"ISBN": "9788202253929",
	"TIMESTAMP": "2024-11-02 15:00:00",
	"SITES": {
		"norli.no": {"TITLE": "Naiv. Super.", "PRICE": 0, "PRODUCT_URL": "-"}
	}
}`

func writeSample(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func readRows(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	r := csv.NewReader(buf)
	r.Comma = '\t'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWriteFlattensRecords(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "9788203364881.json", fullRecord)

	var buf bytes.Buffer
	require.NoError(t, Write(dir, &buf, discard()))

	rows := readRows(t, &buf)
	require.Len(t, rows, 2)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{
		"9788203364881",
		"Sofies verden", "249", "https://www.ark.no/produkt/x",
		"Sofies verden", "229", "https://www.norli.no/y",
		"Sofies verden : roman", "199", "https://www.adlibris.com/no/bok/z",
		"2024-11-02 14:30:00",
	}, rows[1])
}

func TestWriteMissingSiteYieldsEmptyCells(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "9788202253929.json", partialRecord)

	var buf bytes.Buffer
	require.NoError(t, Write(dir, &buf, discard()))

	rows := readRows(t, &buf)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"9788202253929",
		"", "", "",
		"Naiv. Super.", "0", "-",
		"", "", "",
		"2024-11-02 15:00:00",
	}, rows[1])
}

func TestWriteSkipsMalformedRecords(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "9788203364881.json", fullRecord)
	writeSample(t, dir, "broken.json", `{not json`)
	writeSample(t, dir, "README.txt", "not a record")

	var buf bytes.Buffer
	require.NoError(t, Write(dir, &buf, discard()))

	rows := readRows(t, &buf)
	// Header plus the one valid record; the malformed file is skipped.
	assert.Len(t, rows, 2)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "9788203364881.json", fullRecord)

	out := filepath.Join(t.TempDir(), "entries.tsv")
	require.NoError(t, WriteFile(dir, out, discard()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ARK_TITLE")
	assert.Contains(t, string(data), "9788203364881")
}
