package pgerror

// Constraint groups the schema/table/column/constraint fields a server
// attaches to integrity-violation errors.
type Constraint struct {
	Schema   string
	Table    string
	Column   string
	DataType string
	Name     string
}

// Constraint returns the schema object identifiers attached to this
// descriptor, if the server supplied any.
func (d Descriptor) Constraint() Constraint {
	return Constraint{
		Schema:   d.schema,
		Table:    d.table,
		Column:   d.column,
		DataType: d.dataType,
		Name:     d.constraint,
	}
}

// Position returns the 1-based character index into the original query
// string where the error was detected, or 0 if the server did not report one.
func (d Descriptor) Position() int32 { return d.position }

// Context returns the server's indication of the context in which the error
// occurred (e.g. a PL/pgSQL call stack).
func (d Descriptor) Context() string { return d.context }
