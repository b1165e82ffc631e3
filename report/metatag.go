package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"

	apperrors "github.com/kavyahq/storyeval/errors"
	"github.com/kavyahq/storyeval/metatag"
)

// MetaTagRow pairs a story filename with its meta-tag record.
type MetaTagRow struct {
	Filename string
	Record   metatag.Record
}

// WriteMetaTagCSV writes one row per story: filename followed by the
// eleven category columns in canonical order. Newlines inside values are
// flattened to spaces so each record stays on one CSV line.
func WriteMetaTagCSV(path string, rows []MetaTagRow) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.LocalIO(path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)

	header := append([]string{"filename"}, metatag.Keys...)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		rec := make([]string, 0, len(header))
		rec = append(rec, row.Filename)
		for _, k := range metatag.Keys {
			rec = append(rec, flattenNewlines(row.Record[k]))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteMetaTagJSON writes the same rows as an indented JSON array. Values
// that themselves hold serialized JSON arrays or objects are re-expanded
// into real structures for readability; everything else stays a string.
func WriteMetaTagJSON(path string, rows []MetaTagRow) error {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		obj := map[string]any{"filename": row.Filename}
		for _, k := range metatag.Keys {
			obj[k] = expandValue(row.Record[k])
		}
		out = append(out, obj)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.LocalIO(path, err)
	}
	return nil
}

// expandValue parses a value back into a JSON structure when it looks
// like one, falling back to the raw string.
func expandValue(v string) any {
	if !strings.HasPrefix(v, "[") && !strings.HasPrefix(v, "{") {
		return v
	}
	var parsed any
	if err := json.Unmarshal([]byte(v), &parsed); err != nil {
		return v
	}
	return parsed
}

func flattenNewlines(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
