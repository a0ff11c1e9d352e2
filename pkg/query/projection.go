// Package query builds parameterized SELECT statements over a projected table.
package query

import (
	"fmt"
	"strings"
)

// Projection maps logical field names to alias-qualified columns of one table.
type Projection struct {
	table   string
	alias   string
	fields  map[string]string
	ordered []string
}

// NewProjection creates a Projection for table, qualified with alias.
func NewProjection(table, alias string) *Projection {
	return &Projection{
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Field maps a column to the logical name callers filter and sort by.
func (p *Projection) Field(column, name string) *Projection {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.fields[name] = qualified
	p.ordered = append(p.ordered, qualified)
	return p
}

// From returns the table reference with its alias.
func (p *Projection) From() string {
	return p.table + " " + p.alias
}

// Column resolves a logical name. Unmapped names report false.
func (p *Projection) Column(name string) (string, bool) {
	col, ok := p.fields[name]
	return col, ok
}

// Columns returns the projected columns in declaration order.
func (p *Projection) Columns() string {
	return strings.Join(p.ordered, ", ")
}

// Subset returns a comma-separated column list for the named fields, skipping unmapped names.
func (p *Projection) Subset(names ...string) string {
	cols := make([]string, 0, len(names))
	for _, n := range names {
		if col, ok := p.fields[n]; ok {
			cols = append(cols, col)
		}
	}
	return strings.Join(cols, ", ")
}
