package catalog

import "context"

// FieldType is the primitive storage kind of a column.
type FieldType int

const (
	Unknown FieldType = iota
	Boolean
	Byte
	Integer // 2-byte
	Long    // 4-byte
	BigInt  // 8-byte
	Single
	Double
	Currency
	Decimal
	Date
	GUID
	Binary // fixed binary, sized by declaration
	Text   // variable text, sized by declaration
	Memo   // long text
	LongBinary
	Attachment
)

var fieldTypeNames = [...]string{
	"unknown", "boolean", "byte", "integer", "long", "bigint", "single", "double",
	"currency", "decimal", "date", "guid", "binary", "text", "memo", "longbinary", "attachment",
}

func (f FieldType) String() string {
	if f < 0 || int(f) >= len(fieldTypeNames) {
		return "unknown"
	}
	return fieldTypeNames[f]
}

type Table struct {
	Name    string
	Connect string // non-empty when the table is linked to an external source
}

// IsLinked reports whether the table's data lives outside the catalog.
func (t Table) IsLinked() bool {
	return t.Connect != ""
}

type Column struct {
	Name string
	Type FieldType
	Size int
}

// Source exposes table metadata and row access of a database catalog.
type Source interface {
	Tables(ctx context.Context) ([]Table, error)
	Columns(ctx context.Context, table Table) ([]Column, error)
	// OpenCount returns an exact row count by opening the table directly.
	OpenCount(ctx context.Context, table Table) (int64, error)
	// QueryCount is the slower count-all fallback.
	QueryCount(ctx context.Context, table Table) (int64, error)
}
