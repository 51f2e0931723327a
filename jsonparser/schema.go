package jsonparser

import "github.com/fwojciec/pbidoc"

// Ensure SchemaExtractor implements pbidoc.SchemaExtractor at compile time.
var _ pbidoc.SchemaExtractor = (*SchemaExtractor)(nil)

// SchemaExtractor flattens DataModelSchema descriptors.
type SchemaExtractor struct{}

// NewSchemaExtractor creates a new SchemaExtractor.
func NewSchemaExtractor() *SchemaExtractor {
	return &SchemaExtractor{}
}

// ExtractColumns returns one record per column of model.tables, skipping
// auto-generated date tables.
func (e *SchemaExtractor) ExtractColumns(model pbidoc.Descriptor) []pbidoc.ColumnRecord {
	columns := []pbidoc.ColumnRecord{}

	for _, table := range ParseDescriptor(model).Get("model", "tables").Items() {
		tableName := table.Get("name").String()
		if pbidoc.IsReservedTable(tableName) {
			continue
		}

		for _, column := range table.Get("columns").Items() {
			columns = append(columns, pbidoc.ColumnRecord{
				TableName:    tableName,
				ColumnName:   column.Get("name").String(),
				DataType:     column.Get("dataType").String(),
				IsCalculated: pbidoc.IsCalculatedColumnType(column.Get("type").String()),
			})
		}
	}
	return columns
}
