package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spigell/lead-screener/internal/screening"
)

// Format selects the serialization of screening results.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
)

var header = []string{"Designation Relevance", "How Relevant", "Geography", "Target Persona", "Next Step"}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatTSV:
		return FormatTSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q (expected csv, tsv or json)", name)
	}
}

// Write serializes the results in the requested format.
func Write(w io.Writer, format Format, results []screening.Result) error {
	switch format {
	case FormatCSV:
		return writeDelimited(w, ',', results)
	case FormatTSV:
		return writeDelimited(w, '\t', results)
	case FormatJSON:
		return writeJSON(w, results)
	default:
		return fmt.Errorf("unsupported export format: %q", format)
	}
}

func writeDelimited(w io.Writer, comma rune, results []screening.Result) error {
	writer := csv.NewWriter(w)
	writer.Comma = comma

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, result := range results {
		v := result.Verdict
		if v == nil {
			return fmt.Errorf("result %d has no verdict", i)
		}
		record := []string{string(v.Tier), v.Rationale, v.Geography, v.TargetPersona, v.NextStep}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeJSON(w io.Writer, results []screening.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}
