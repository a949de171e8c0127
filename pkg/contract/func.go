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

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/sigcheck/pkg/sig"
)

// refCheck is the tri-state requirement on returning by reference.
type refCheck int

const (
	refUnchecked refCheck = iota
	refRequired
	refForbidden
)

// Func specifies the required shape of a callable. It is configured by
// chained calls and then checked by exactly one call to Validate.
// Nothing is checked if Validate is never called.
//
//   f, err := contract.NewFunc(fn)
//   if err != nil {
//     return err
//   }
//   return f.
//     AddParam(contract.NewParam("ctx").WithType("context.Context")).
//     RequireReturnType("error").
//     Validate()
type Func struct {
	collector  *Collector
	done       bool
	params     []*Param
	returnRef  refCheck
	returnType string
	target     sig.Callable
}

// NewFunc constructs a Func bound to the callable. An
// *UnsupportedKindError is returned if the callable is neither a
// function nor a method.
func NewFunc(fn sig.Callable) (*Func, error) {
	c, err := NewCollector(fn)
	if err != nil {
		return nil, err
	}
	return &Func{collector: c, target: fn}, nil
}

// AddParam appends the specification of the next positional parameter.
// A nil specification is ignored.
func (f *Func) AddParam(p *Param) *Func {
	if p != nil {
		f.params = append(f.params, p)
	}
	return f
}

// RequireReturnType requires the callable to declare a result of the
// named type. An empty name disables the check.
func (f *Func) RequireReturnType(typ string) *Func {
	f.returnType = strings.TrimSpace(typ)
	return f
}

// RequireReturnByReference requires the callable to return, or not to
// return, its result by reference.
func (f *Func) RequireReturnByReference(byRef bool) *Func {
	if byRef {
		f.returnRef = refRequired
	} else {
		f.returnRef = refForbidden
	}
	return f
}

// Collector provides access to the tokens used to format messages,
// before Validate is called.
func (f *Func) Collector() *Collector { return f.collector }

// Validate performs all checks in priority order, stopping at the
// first mismatch, and returns a *Violation describing it. It must be
// called exactly once; subsequent calls return ErrConsumed.
func (f *Func) Validate() error {
	if f.done {
		return ErrConsumed
	}
	f.done = true

	f.checkParams()
	f.checkReturnType()
	f.checkReturnByReference()

	return f.collector.Err()
}

func (f *Func) checkParams() {
	c := f.collector
	if c.Failed() {
		return
	}
	params := f.target.Params()
	if len(params) != len(f.params) {
		c.AddError("The @function must have @argumentsCount arguments, @parametersCount given.",
			Tokens{
				"@argumentsCount":  strconv.Itoa(len(f.params)),
				"@parametersCount": strconv.Itoa(len(params)),
			})
		return
	}
	for i, param := range params {
		f.params[i].Check(param, c)
	}
}

func (f *Func) checkReturnType() {
	c := f.collector
	if f.returnType == "" || c.Failed() {
		return
	}
	result := f.target.Result()
	switch {
	case result == nil:
		c.AddError("The type of returning value for @function is not specified.", nil)
	case !Compatible(result, f.returnType):
		c.AddError(
			`The @function must return a value of "@returnType", but at the moment it is "@currentType".`,
			Tokens{"@returnType": f.returnType, "@currentType": result.Name()})
	}
}

func (f *Func) checkReturnByReference() {
	c := f.collector
	if f.returnRef == refUnchecked || c.Failed() {
		return
	}
	switch byRef := f.target.ResultByReference(); {
	case f.returnRef == refRequired && !byRef:
		c.AddError("The @function must return a value by reference.", nil)
	case f.returnRef == refForbidden && byRef:
		c.AddError("The @function must not return a value by reference.", nil)
	}
}
