package relaxcsv

// Field is one normalized value of a line.
// Valid is false for an absent field, in which case Value is always empty.
type Field struct {
	Value string
	Valid bool
}

// String returns f.Value; an absent field prints as the empty string.
func (f Field) String() string {
	return f.Value
}

// Null returns the absent field.
func Null() Field {
	return Field{}
}

// Text returns a present field holding s.
func Text(s string) Field {
	return Field{Value: s, Valid: true}
}

// Record is the ordered sequence of fields of one line, left to right.
type Record []Field

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r)
}

// Strings returns the field values, mapping absent fields to the empty string.
func (r Record) Strings() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Value
	}
	return out
}

// Values returns the field values as pointers, nil for absent fields.
// It is the natural shape for JSON encoding with null for missing values.
func (r Record) Values() []*string {
	if r == nil {
		return nil
	}
	out := make([]*string, len(r))
	for i := range r {
		if r[i].Valid {
			out[i] = &r[i].Value
		}
	}
	return out
}
