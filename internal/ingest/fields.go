package ingest

import "strings"

// FieldMapper resolves logical fields against header labels that drift
// between spreadsheet versions ("Nama" vs "PIC" vs "User"). Matching is
// case- and separator-insensitive: exact normalized match first, then
// substring, in header order.
type FieldMapper struct {
	order      []string          // original headers, in sheet order
	normalized map[string]string // normalized -> original
}

func NewFieldMapper(headers []string) *FieldMapper {
	fm := &FieldMapper{
		normalized: make(map[string]string, len(headers)),
	}
	for _, h := range headers {
		fm.order = append(fm.order, h)
		fm.normalized[normalizeHeader(h)] = h
	}
	return fm
}

func normalizeHeader(header string) string {
	h := strings.TrimSpace(strings.ToLower(header))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

// Resolve returns the first original header matching any candidate.
func (fm *FieldMapper) Resolve(candidates ...string) (string, bool) {
	for _, candidate := range candidates {
		pattern := normalizeHeader(candidate)

		if original, ok := fm.normalized[pattern]; ok {
			return original, true
		}

		for _, original := range fm.order {
			if strings.Contains(normalizeHeader(original), pattern) {
				return original, true
			}
		}
	}
	return "", false
}

// Value returns the first candidate's cell value that is non-blank after
// trimming, or "" when no candidate yields one. Candidates are tried in
// order so a blank "Nama" column still falls through to "PIC".
func (fm *FieldMapper) Value(row Row, candidates ...string) string {
	for _, candidate := range candidates {
		pattern := normalizeHeader(candidate)

		if original, ok := fm.normalized[pattern]; ok {
			if val := strings.TrimSpace(row.Cells[original]); val != "" {
				return val
			}
		}

		for _, original := range fm.order {
			if strings.Contains(normalizeHeader(original), pattern) {
				if val := strings.TrimSpace(row.Cells[original]); val != "" {
					return val
				}
			}
		}
	}
	return ""
}
