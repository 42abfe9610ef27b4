package dataset

import (
	"strconv"
	"strings"
)

// normalizeCol lowercases and trims a header cell for cross-format
// column matching, stripping any residual byte-order mark.
func normalizeCol(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.ToLower(strings.TrimSpace(s))
}

// mapColumns builds a normalized column name -> index map.
func mapColumns(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[normalizeCol(col)] = i
	}
	return m
}

// columnIndex returns the index of the first matching header variant,
// or -1 if none is present.
func columnIndex(colIdx map[string]int, names ...string) int {
	for _, name := range names {
		if idx, ok := colIdx[normalizeCol(name)]; ok {
			return idx
		}
	}
	return -1
}

// getCol returns the trimmed cell at idx, or "" when the row is short.
func getCol(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseCount coerces a VALUE cell to a non-negative incident count.
// Integer strings and float strings with a zero fractional part are
// accepted; anything else (non-numeric, negative, fractional) is
// rejected so the row is dropped and counted, never defaulted to zero.
func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\uFEFF"))
	if s == "" {
		return 0, false
	}

	if v, err := strconv.Atoi(s); err == nil {
		if v < 0 {
			return 0, false
		}
		return v, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	v := int(f)
	if float64(v) != f {
		return 0, false
	}
	return v, true
}

// detectDelimiter inspects the header line and picks tab when tabs
// outnumber commas, comma otherwise.
func detectDelimiter(headerLine string) rune {
	if strings.Count(headerLine, "\t") > strings.Count(headerLine, ",") {
		return '\t'
	}
	return ','
}

// inScope reports whether a region name contains any scope token,
// case-insensitively. An empty token list keeps everything.
func inScope(region string, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	lower := strings.ToLower(region)
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(tok)) {
			return true
		}
	}
	return false
}
