package ingest

// Row is one parsed data record keyed by header name. Headers preserve the
// column order of the source file so that heuristic scans over "all fields"
// are deterministic.
type Row struct {
	// LineNumber is the 1-indexed line in the source file (header is line 1).
	LineNumber int
	// Headers is the ordered header list shared by all rows of one file.
	Headers []string
	// Values maps header name to the raw cell value.
	Values map[string]string
}

// Get returns the value for a column by header name.
func (r *Row) Get(header string) string {
	return r.Values[header]
}

// GetOrDefault returns the value for a column, or defaultVal if the column is
// absent or empty.
func (r *Row) GetOrDefault(header, defaultVal string) string {
	if val, ok := r.Values[header]; ok && val != "" {
		return val
	}
	return defaultVal
}

// Has reports whether the row's source file carries the given column at all.
func (r *Row) Has(header string) bool {
	_, ok := r.Values[header]
	return ok
}

// IsEmpty returns true if the row has no non-empty values.
func (r *Row) IsEmpty() bool {
	for _, v := range r.Values {
		if v != "" {
			return false
		}
	}
	return true
}
