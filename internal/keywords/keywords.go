package keywords

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxPromptRows bounds how many rows are embedded into a model prompt.
const maxPromptRows = 10

// Row is one keyword with its monthly search volume.
type Row struct {
	Keyword      string
	SearchVolume int
}

// Load parses a CSV keyword table. The header must contain "Keyword" and
// "Search Volume" columns (case-insensitive, any order); other columns are
// ignored. Unparseable volume values become 0 rather than failing the upload.
func Load(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	keywordCol, volumeCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "keyword":
			keywordCol = i
		case "search volume":
			volumeCol = i
		}
	}
	if keywordCol < 0 || volumeCol < 0 {
		return nil, fmt.Errorf("CSV must have 'Keyword' and 'Search Volume' columns, got: %s", strings.Join(header, ", "))
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		if keywordCol >= len(record) {
			continue
		}

		keyword := strings.TrimSpace(record[keywordCol])
		if keyword == "" {
			continue
		}

		volume := 0
		if volumeCol < len(record) {
			volume, _ = strconv.Atoi(strings.TrimSpace(record[volumeCol]))
		}

		rows = append(rows, Row{Keyword: keyword, SearchVolume: volume})
	}

	return rows, nil
}

// RenderTable renders at most the first 10 rows as a compact CSV table for
// embedding into a model prompt. Returns "" for an empty table.
func RenderTable(rows []Row) string {
	if len(rows) == 0 {
		return ""
	}
	if len(rows) > maxPromptRows {
		rows = rows[:maxPromptRows]
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Write([]string{"Keyword", "Search Volume"})
	for _, row := range rows {
		w.Write([]string{row.Keyword, strconv.Itoa(row.SearchVolume)})
	}
	w.Flush()
	return sb.String()
}
