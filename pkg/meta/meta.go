// Copyright 2019 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package meta connects metadata attached to callables with the
// contracts that the metadata expects those callables to satisfy.
//
// A metadata object opts into validation by implementing Validator.
// Wrapping any Reader in a ValidatingReader guarantees that every
// Validator is invoked before the metadata reaches the caller.
package meta

import "github.com/cockroachdb/sigcheck/pkg/sig"

// A Validator is a metadata object which checks the callable that it
// is attached to. Implementations will typically construct a
// contract.Method or contract.Func and return the result of its
// Validate method.
type Validator interface {
	Validate(fn sig.Callable) error
}

// A Reader yields the metadata objects attached to a callable.
type Reader interface {
	MethodMetadata(fn sig.Callable) ([]interface{}, error)
}

// ValidatingReader invokes Validator metadata as it is read.
type ValidatingReader struct {
	Reader
}

var _ Reader = ValidatingReader{}

// MethodMetadata implements Reader. The first error returned by a
// Validator is returned unchanged and no metadata is returned.
func (r ValidatingReader) MethodMetadata(fn sig.Callable) ([]interface{}, error) {
	found, err := r.Reader.MethodMetadata(fn)
	if err != nil {
		return nil, err
	}
	ret := make([]interface{}, 0, len(found))
	for _, m := range found {
		if v, ok := m.(Validator); ok {
			if err := v.Validate(fn); err != nil {
				return nil, err
			}
		}
		ret = append(ret, m)
	}
	return ret, nil
}

// Find returns the first metadata object accepted by match, or nil if
// there is none.
func Find(r Reader, fn sig.Callable, match func(interface{}) bool) (interface{}, error) {
	found, err := r.MethodMetadata(fn)
	if err != nil {
		return nil, err
	}
	for _, m := range found {
		if match(m) {
			return m, nil
		}
	}
	return nil, nil
}
