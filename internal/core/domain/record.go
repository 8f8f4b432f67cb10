package domain

import "errors"

var (
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrWorksheetNotFound = errors.New("worksheet not found")
	ErrRowNotFound       = errors.New("row not found")
	ErrVersionConflict   = errors.New("row was modified concurrently")
)

// Record is one worksheet row keyed by header field name.
type Record map[string]string

// Row is a record together with the version the store assigned to it.
type Row struct {
	Version int64
	Record  Record
}

// Project returns a copy of r restricted to header. Missing fields are empty.
func (r Record) Project(header []string) Record {
	out := make(Record, len(header))
	for _, h := range header {
		out[h] = r[h]
	}
	return out
}

// Values returns the cells of r in header order.
func (r Record) Values(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = r[h]
	}
	return out
}

// RecordFromValues zips a positional row with its header. Short rows are
// padded with empty strings.
func RecordFromValues(header, values []string) Record {
	out := make(Record, len(header))
	for i, h := range header {
		if i < len(values) {
			out[h] = values[i]
		} else {
			out[h] = ""
		}
	}
	return out
}
