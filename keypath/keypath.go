/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package keypath reads and writes fields of an object graph through
// dot-delimited paths such as "transactions.amount.sum".
//
// Each segment names a field on the current object. A sequence relation
// followed by more segments fans the traversal out over its elements, and an
// aggregate segment (sum, avg, count, min, max) collapses the fanned-out
// values back into one. Paths are resolved afresh on every call.
package keypath

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jerry-enebeli/kvc/config"
)

// Accessor resolves paths. It holds configuration only and is safe to share;
// the object graph it is handed must not be mutated during a call.
type Accessor struct {
	separator   string
	maxSegments int
	logger      *logrus.Logger
}

type Option func(*Accessor)

func WithSeparator(separator string) Option {
	return func(a *Accessor) {
		if separator != "" {
			a.separator = separator
		}
	}
}

// WithMaxSegments caps path length. Zero or less disables the cap.
func WithMaxSegments(max int) Option {
	return func(a *Accessor) {
		a.maxSegments = max
	}
}

func WithLogger(logger *logrus.Logger) Option {
	return func(a *Accessor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func New(opts ...Option) *Accessor {
	a := &Accessor{
		separator:   config.DEFAULT_SEPARATOR,
		maxSegments: config.DEFAULT_MAX_SEGMENTS,
		logger:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewFromConfig builds an accessor from the loaded configuration.
func NewFromConfig(cnf *config.Configuration) *Accessor {
	return New(
		WithSeparator(cnf.KeyPath.Separator),
		WithMaxSegments(cnf.KeyPath.MaxSegments),
		WithLogger(cnf.Logger()),
	)
}

var defaultAccessor = New()

// Get resolves path against obj with the default accessor.
func Get(obj Object, path string) (Result, error) {
	return defaultAccessor.Get(obj, path)
}

// Set assigns value at path on obj with the default accessor.
func Set(obj Object, path string, value interface{}) error {
	return defaultAccessor.Set(obj, path, value)
}

// Get returns the value or values addressed by path.
//
// A sequence relation that ends the path is returned as-is in a single
// result. A nil relation reads as nil and stays nil for the rest of the path.
// The root object itself must not be nil.
func (a *Accessor) Get(obj Object, path string) (Result, error) {
	segments, err := a.split(path)
	if err != nil {
		return Result{}, a.fail(err)
	}
	if isNilObject(obj) {
		return Result{}, a.fail(newError(CodeInvalidPath, path, "", "", "root object is nil"))
	}

	result, err := a.resolve(Single(obj), path, segments, true)
	if err != nil {
		return Result{}, a.fail(err)
	}
	return result, nil
}

// Set resolves every segment but the last, then assigns value to the last
// field on each resolved target. All targets are checked before anything is
// written, so a failing call leaves the graph unchanged. The root object
// must not be nil.
func (a *Accessor) Set(obj Object, path string, value interface{}) error {
	segments, err := a.split(path)
	if err != nil {
		return a.fail(err)
	}
	if isNilObject(obj) {
		return a.fail(newError(CodeInvalidPath, path, "", "", "root object is nil"))
	}

	targets := Single(obj)
	if len(segments) > 1 {
		targets, err = a.resolve(targets, path, segments[:len(segments)-1], false)
		if err != nil {
			return a.fail(err)
		}
	}

	name := segments[len(segments)-1]
	if _, ok := aggregateFor(targets, name); ok {
		return a.fail(newError(CodeReadOnlyField, path, name, "aggregate", "aggregate results cannot be assigned"))
	}

	type write struct {
		obj   Object
		field *field
		value interface{}
	}

	writes := make([]write, 0, targets.Len())
	for i, target := range targets.values {
		if target == nil {
			continue
		}

		obj, f, err := a.lookup(target, path, name)
		if err == nil && f.readOnly() {
			err = newError(CodeReadOnlyField, path, name, obj.KeyPathSchema().TypeName(), "field is read-only")
		}

		var converted interface{}
		if err == nil {
			converted, err = f.convert(value)
			if err != nil {
				err = newError(CodeTypeMismatch, path, name, obj.KeyPathSchema().TypeName(), err.Error())
			}
		}

		if err != nil {
			if targets.many {
				return a.fail(errors.Wrapf(err, "element %d", i))
			}
			return a.fail(err)
		}
		writes = append(writes, write{obj: obj, field: f, value: converted})
	}

	for _, w := range writes {
		w.field.store(w.obj, w.value)
	}
	return nil
}

func (a *Accessor) split(path string) ([]string, error) {
	if path == "" {
		return nil, newError(CodeInvalidPath, path, "", "", "path is empty")
	}

	segments := strings.Split(path, a.separator)
	if a.maxSegments > 0 && len(segments) > a.maxSegments {
		return nil, newError(CodeInvalidPath, path, "", "", fmt.Sprintf("path exceeds maximum of %d segments", a.maxSegments))
	}
	for _, segment := range segments {
		if segment == "" {
			return nil, newError(CodeInvalidPath, path, "", "", "path contains an empty segment")
		}
	}
	return segments, nil
}

// resolve walks segments left to right. Field segments narrow or fan out the
// current result; aggregate segments collapse a fanned-out result. When
// terminal is false the last segment is an intermediate step and a sequence
// relation there fans out as well.
func (a *Accessor) resolve(current Result, path string, segments []string, terminal bool) (Result, error) {
	for i, segment := range segments {
		if op, ok := aggregateFor(current, segment); ok {
			value, err := reduce(op, current.values)
			if err != nil {
				return Result{}, newError(CodeTypeMismatch, path, segment, "aggregate", err.Error())
			}
			current = Single(value)
			continue
		}

		last := terminal && i == len(segments)-1
		if !current.many {
			next, err := a.step(current.values[0], path, segment, last)
			if err != nil {
				return Result{}, err
			}
			current = next
			continue
		}

		flattened := make([]interface{}, 0, current.Len())
		for j, value := range current.values {
			next, err := a.step(value, path, segment, last)
			if err != nil {
				return Result{}, errors.Wrapf(err, "element %d", j)
			}
			flattened = append(flattened, next.values...)
		}
		current = Many(flattened)
	}
	return current, nil
}

// aggregateFor reports whether segment acts as an aggregate on current. An
// operator name applies to fanned-out values unless their objects declare a
// field of that name; the "@" prefix always selects the operator.
func aggregateFor(current Result, segment string) (Aggregate, bool) {
	op, explicit := ResolveAggregate(segment)
	if op == "" {
		return "", false
	}
	if explicit {
		return op, true
	}
	if !current.many {
		return "", false
	}
	for _, value := range current.values {
		if value == nil {
			continue
		}
		if obj, ok := value.(Object); ok {
			if _, declared := obj.KeyPathSchema().lookup(segment); declared {
				return "", false
			}
		}
		break
	}
	return op, true
}

// isNilObject catches both a nil interface and a typed nil pointer.
func isNilObject(obj Object) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func (a *Accessor) step(value interface{}, path, segment string, last bool) (Result, error) {
	if value == nil {
		return Single(nil), nil
	}

	obj, f, err := a.lookup(value, path, segment)
	if err != nil {
		return Result{}, err
	}

	if f.kind == KindToMany && !last {
		return Many(f.elems(obj)), nil
	}
	return Single(f.get(obj)), nil
}

func (a *Accessor) lookup(value interface{}, path, segment string) (Object, *field, error) {
	obj, ok := value.(Object)
	if !ok {
		return nil, nil, newError(CodeNoSuchField, path, segment, fmt.Sprintf("%T", value), "value has no fields")
	}

	schema := obj.KeyPathSchema()
	f, ok := schema.lookup(segment)
	if !ok {
		return nil, nil, newError(CodeNoSuchField, path, segment, schema.TypeName(), "no such field")
	}
	return obj, f, nil
}

func (a *Accessor) fail(err error) error {
	fields := logrus.Fields{"error": err.Error()}
	var kpErr *Error
	if errors.As(err, &kpErr) {
		fields["path"] = kpErr.Path
		fields["segment"] = kpErr.Segment
		fields["code"] = kpErr.Code
	}
	a.logger.WithFields(fields).Debug("key path resolution failed")
	return err
}
