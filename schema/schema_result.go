package schema

// DataSource reports where a dataset request was served from.
type DataSource string

// Data sources reported in a DatasetResult.
const (
	CacheSource  DataSource = "cache"
	RemoteSource DataSource = "remote"
)

// DatasetResult describes a satisfied dataset request.
// Rows holds the typed slice for Kind ([]WeeklyStat, []Play or []DraftPick).
type DatasetResult struct {
	Kind     DatasetKind `json:"kind"`
	Key      string      `json:"cache_key"`
	Path     string      `json:"path"`
	Source   DataSource  `json:"source"`
	RowCount int         `json:"row_count"`
	Rows     any         `json:"rows,omitempty"`
}

// Head returns a copy of r whose Rows holds at most n rows. n <= 0 drops the rows.
// RowCount keeps the full count.
func (r DatasetResult) Head(n int) DatasetResult {
	if n <= 0 {
		r.Rows = nil
		return r
	}
	switch rows := r.Rows.(type) {
	case []WeeklyStat:
		r.Rows = rows[:min(n, len(rows))]
	case []Play:
		r.Rows = rows[:min(n, len(rows))]
	case []DraftPick:
		r.Rows = rows[:min(n, len(rows))]
	}
	return r
}
