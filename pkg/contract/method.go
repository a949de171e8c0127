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

package contract

import "github.com/cockroachdb/sigcheck/pkg/sig"

// Method is a Func which additionally requires the callable to be
// declared on a particular type, or on a subtype or implementor of it.
type Method struct {
	Func
	requiredRecv string
}

// NewMethod constructs a Method. The declaring type is checked
// immediately; if it does not match, that violation takes priority
// over everything that Validate would otherwise report. An empty
// requiredRecv disables the check.
func NewMethod(fn sig.Callable, requiredRecv string) (*Method, error) {
	f, err := NewFunc(fn)
	if err != nil {
		return nil, err
	}
	m := &Method{Func: *f, requiredRecv: requiredRecv}
	if requiredRecv != "" {
		if recv := fn.Recv(); recv == nil || !recv.Is(requiredRecv) {
			m.collector.AddError(
				`The @function defined in the class that not inherits "@requiredClass".`,
				Tokens{"@requiredClass": requiredRecv})
		}
	}
	return m, nil
}

// RequiredRecv returns the name of the type that the method must be
// declared on.
func (m *Method) RequiredRecv() string { return m.requiredRecv }
