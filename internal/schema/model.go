package schema

import "office-pump/internal/catalog"

// Table is a catalog table together with its column layout.
type Table struct {
	catalog.Table
	Columns []catalog.Column
	Err     error // set when the column scan failed
}
