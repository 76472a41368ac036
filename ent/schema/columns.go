package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
)

// Table returns the table name set by the entsql annotation on s.
func Table(s ent.Interface) string {
	for _, a := range s.Annotations() {
		switch a := a.(type) {
		case entsql.Annotation:
			return a.Table
		case *entsql.Annotation:
			return a.Table
		}
	}
	return ""
}

// Columns returns the storage column of every field of s, mixin fields
// first, in declaration order.
func Columns(s ent.Interface) []string {
	var fields []ent.Field
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
	}
	fields = append(fields, s.Fields()...)

	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		d := f.Descriptor()
		if d.StorageKey != "" {
			cols = append(cols, d.StorageKey)
			continue
		}
		cols = append(cols, d.Name)
	}
	return cols
}
