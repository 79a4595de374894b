package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Columns is the fixed TSV header. One row per record, one column triple
// per site.
var Columns = []string{
	"ISBN",
	"ARK_TITLE", "ARK_PRICE", "ARK_URL",
	"NORLI_TITLE", "NORLI_PRICE", "NORLI_URL",
	"ADLIBRIS_TITLE", "ADLIBRIS_PRICE", "ADLIBRIS_URL",
	"TIMESTAMP",
}

// rawRecord keeps the site entries untyped so a document missing a site or
// a field flattens to empty cells instead of failing.
type rawRecord struct {
	ISBN      string                            `json:"ISBN"`
	Timestamp string                            `json:"TIMESTAMP"`
	Sites     map[string]map[string]interface{} `json:"SITES"`
}

// Write flattens every .json record in dir into a tab-separated table.
// Malformed documents are logged and skipped; they never abort the export.
func Write(dir string, out io.Writer, logger *slog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read record directory: %w", err)
	}

	w := csv.NewWriter(out)
	w.Comma = '\t'

	if err := w.Write(Columns); err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("skipping unreadable record", "file", name, "error", err)
			continue
		}

		var record rawRecord
		if err := json.Unmarshal(data, &record); err != nil {
			logger.Warn("skipping malformed record", "file", name, "error", err)
			continue
		}

		if err := w.Write(row(record)); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteFile is Write targeting a file path.
func WriteFile(dir, outPath string, logger *slog.Logger) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	return Write(dir, f, logger)
}

func row(record rawRecord) []string {
	cells := []string{record.ISBN}
	for _, site := range []string{"ark.no", "norli.no", "adlibris.no"} {
		fields := record.Sites[site]
		cells = append(cells,
			cell(fields, "TITLE"),
			cell(fields, "PRICE"),
			cell(fields, "PRODUCT_URL"),
		)
	}
	return append(cells, record.Timestamp)
}

// cell renders one site field, defaulting to an empty string when the key
// is absent.
func cell(fields map[string]interface{}, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
