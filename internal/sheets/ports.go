package sheets

import "context"

// Row is one record of a table, keyed by column name. Column access is by
// name, never by position.
type Row map[string]string

// Table names used by every adapter.
const (
	TableUsers     = "users"
	TableExpenses  = "expenses"
	TableConsumers = "expense_consumers"
	TableAudit     = "audit_log"
)

// Columns lists the canonical column order per table. Adapters that need
// positional layout (spreadsheet tabs, SQL inserts) derive it from here.
var Columns = map[string][]string{
	TableUsers:     {"id", "name", "email", "password", "created_at"},
	TableExpenses:  {"id", "product_name", "quantity", "paid_by", "amount", "expense_date", "note", "created_at"},
	TableConsumers: {"id", "expense_id", "user_id", "created_at"},
	TableAudit:     {"event", "expense_id", "amount", "detail", "created_at"},
}

// RowStore is the outbound port for the row-oriented store. FetchAll returns
// every row of a table in append order; Append adds one row at the end.
// Every operation re-reads the store, there is no caching in the adapter.
type RowStore interface {
	FetchAll(ctx context.Context, table string) ([]Row, error)
	Append(ctx context.Context, table string, row Row) error
}
