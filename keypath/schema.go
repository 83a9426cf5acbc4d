package keypath

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FieldKind describes how the accessor traverses a field.
type FieldKind int

const (
	KindAttribute FieldKind = iota
	KindToOne
	KindToMany
)

// Object is implemented by types whose fields can be addressed by path.
type Object interface {
	KeyPathSchema() *Schema
}

type field struct {
	name  string
	kind  FieldKind
	get   func(obj interface{}) interface{}
	elems func(obj interface{}) []interface{}

	// convert checks and converts a value for the field; store writes an
	// already converted value. Both are nil for read-only fields.
	convert func(value interface{}) (interface{}, error)
	store   func(obj, value interface{})
}

func (f *field) readOnly() bool {
	return f.store == nil
}

// Schema is the field registry of one entity type. It is built once and is
// read-only afterwards.
type Schema struct {
	typeName string
	fields   map[string]*field
	order    []string
}

func NewSchema(typeName string) *Schema {
	return &Schema{
		typeName: typeName,
		fields:   make(map[string]*field),
	}
}

// TypeName returns the entity name used in error messages.
func (s *Schema) TypeName() string {
	return s.typeName
}

// Fields returns the registered field names in registration order.
func (s *Schema) Fields() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Kind reports the kind of a registered field.
func (s *Schema) Kind(name string) (FieldKind, bool) {
	f, ok := s.fields[name]
	if !ok {
		return 0, false
	}
	return f.kind, true
}

func (s *Schema) lookup(name string) (*field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

func (s *Schema) add(f *field) {
	if _, exists := s.fields[f.name]; exists {
		panic(fmt.Sprintf("keypath: field %q registered twice on %s", f.name, s.typeName))
	}
	s.fields[f.name] = f
	s.order = append(s.order, f.name)
}

// Attribute registers a leaf field. A nil set makes the field read-only.
func Attribute[T any, V any](s *Schema, name string, get func(T) V, set func(T, V)) {
	s.add(setter(&field{
		name: name,
		kind: KindAttribute,
		get:  getter(get),
	}, set))
}

// Related is the constraint for relation targets. Targets are usually
// pointers, and a nil target reads as an untyped nil.
type Related interface {
	Object
	comparable
}

// ToOne registers a single-valued relation to another Object.
func ToOne[T any, V Related](s *Schema, name string, get func(T) V, set func(T, V)) {
	s.add(setter(&field{
		name: name,
		kind: KindToOne,
		get: func(obj interface{}) interface{} {
			return related(get(obj.(T)))
		},
	}, set))
}

// ToMany registers a sequence-valued relation. Reads that continue past
// this field fan out over its elements in order.
func ToMany[T any, E Related](s *Schema, name string, get func(T) []E, set func(T, []E)) {
	s.add(setter(&field{
		name: name,
		kind: KindToMany,
		get:  getter(get),
		elems: func(obj interface{}) []interface{} {
			items := get(obj.(T))
			out := make([]interface{}, len(items))
			for i, item := range items {
				out[i] = related(item)
			}
			return out
		},
	}, set))
}

func related[V Related](v V) interface{} {
	var zero V
	if v == zero {
		return nil
	}
	return v
}

func getter[T any, V any](get func(T) V) func(interface{}) interface{} {
	return func(obj interface{}) interface{} {
		return get(obj.(T))
	}
}

func setter[T any, V any](f *field, set func(T, V)) *field {
	if set == nil {
		return f
	}
	f.convert = func(value interface{}) (interface{}, error) {
		return assign[V](value)
	}
	f.store = func(obj, value interface{}) {
		v, _ := value.(V)
		set(obj.(T), v)
	}
	return f
}

// assign converts value into the field type V. Numeric values are accepted
// for decimal fields, nil stores the zero value.
func assign[V any](value interface{}) (V, error) {
	var zero V
	if value == nil {
		return zero, nil
	}
	if v, ok := value.(V); ok {
		return v, nil
	}
	if _, ok := interface{}(zero).(decimal.Decimal); ok {
		if d, ok := toDecimal(value); ok {
			return interface{}(d).(V), nil
		}
	}
	return zero, fmt.Errorf("cannot assign %T to %T", value, zero)
}
