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

package keypath

import (
	"fmt"
)

type ErrorCode string

const (
	CodeNoSuchField   ErrorCode = "NO_SUCH_FIELD"
	CodeTypeMismatch  ErrorCode = "TYPE_MISMATCH"
	CodeReadOnlyField ErrorCode = "READ_ONLY_FIELD"
	CodeInvalidPath   ErrorCode = "INVALID_PATH"
)

// Sentinels for errors.Is. Any *Error with the same code matches.
var (
	ErrNoSuchField   = &Error{Code: CodeNoSuchField, Message: "no such field"}
	ErrTypeMismatch  = &Error{Code: CodeTypeMismatch, Message: "type mismatch"}
	ErrReadOnlyField = &Error{Code: CodeReadOnlyField, Message: "field is read-only"}
	ErrInvalidPath   = &Error{Code: CodeInvalidPath, Message: "invalid path"}
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Path    string    `json:"path,omitempty"`
	Segment string    `json:"segment,omitempty"`
	Type    string    `json:"type,omitempty"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	switch {
	case e.Segment != "" && e.Type != "":
		return fmt.Sprintf("%s: %s: %q on %s (path %q)", e.Code, e.Message, e.Segment, e.Type, e.Path)
	case e.Path != "":
		return fmt.Sprintf("%s: %s (path %q)", e.Code, e.Message, e.Path)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newError(code ErrorCode, path, segment, typeName, message string) *Error {
	return &Error{
		Code:    code,
		Path:    path,
		Segment: segment,
		Type:    typeName,
		Message: message,
	}
}
