package keypath

// Result is the outcome of resolving a path: one value, or many values after
// a fan-out across a sequence relation.
type Result struct {
	values []interface{}
	many   bool
}

func Single(value interface{}) Result {
	return Result{values: []interface{}{value}}
}

func Many(values []interface{}) Result {
	if values == nil {
		values = []interface{}{}
	}
	return Result{values: values, many: true}
}

func (r Result) IsMany() bool {
	return r.many
}

// Value returns the single value, or the fanned-out values as a slice.
func (r Result) Value() interface{} {
	if r.many {
		return r.Values()
	}
	if len(r.values) == 0 {
		return nil
	}
	return r.values[0]
}

// Values returns a copy of the values in traversal order. A single result
// yields a one-element slice.
func (r Result) Values() []interface{} {
	out := make([]interface{}, len(r.values))
	copy(out, r.values)
	return out
}

func (r Result) Len() int {
	return len(r.values)
}
