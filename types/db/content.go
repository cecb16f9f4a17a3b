// Package db holds the row and result types shared by the core, the api and the sdk.
package db

// ContentRow is one item entry of an object table as stored in the database.
type ContentRow struct {
	ID              int64   `json:"id" db:"id"`
	ObjectName      string  `json:"object_name" db:"object_name"`
	ItemName        string  `json:"item_name" db:"item_name"`
	Category        string  `json:"category" db:"category"`
	Count           int64   `json:"count" db:"item_count"`
	NestType        int     `json:"nest_type" db:"nest_type"`
	ParentTableName *string `json:"parent_table_name" db:"parent_table_name"`
}

// NewContent is an insert payload as decoded from JSON. Count, NestType and
// ParentTableName are left untyped and coerced by the store.
type NewContent struct {
	ObjectName      string `json:"object_name"`
	ItemName        string `json:"item_name"`
	Category        string `json:"category"`
	Count           any    `json:"count"`
	NestType        any    `json:"nest_type"`
	ParentTableName any    `json:"parent_table_name"`
}

// Match is one search hit: a table with a qualifying row and that row's parent
// reference. ParentTableName is nil for rows without a parent.
type Match struct {
	TableName       string  `json:"table_name"`
	ParentTableName *string `json:"parent_table_name"`
}

// TableInfo describes an allocated object table.
type TableInfo struct {
	TableName string `json:"table_name"`
	Rows      int64  `json:"rows"`
}

// Child is a content row that names another table as its parent.
type Child struct {
	TableName string `json:"table_name"`
	RowID     int64  `json:"row_id"`
	ItemName  string `json:"item_name"`
	NestType  int    `json:"nest_type"`
}
