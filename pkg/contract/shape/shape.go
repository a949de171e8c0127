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

// Package shape defines a configurable annotation which requires the
// annotated function or method to have a particular signature.
//
//   /* contract:Shape {
//     "receiver" : "github.com/myproject/forms.Component",
//     "params" : [
//       { "name" : "form", "type" : "[]int", "pointer" : true },
//       { "name" : "state", "type" : "github.com/myproject/forms.Iterator" }
//     ],
//     "returns" : "error"
//   } */
//   func (c *Component) Handle(form *[]int, state Iterator) error { ... }
package shape

import (
	"github.com/cockroachdb/sigcheck/pkg/contract"
	"github.com/cockroachdb/sigcheck/pkg/meta"
	"github.com/cockroachdb/sigcheck/pkg/sig"
)

// Shape is the configuration of the annotation.
type Shape struct {
	// Receiver, if set, requires a method declared on the named type or
	// a subtype or implementor of it.
	Receiver string `json:"receiver,omitempty" yaml:"receiver,omitempty"`
	// Params lists every parameter, in order.
	Params []ParamSpec `json:"params,omitempty" yaml:"params,omitempty"`
	// Returns, if set, requires a result of the named type.
	Returns string `json:"returns,omitempty" yaml:"returns,omitempty"`
	// ReturnsPointer, if set, requires the result to be, or not to be,
	// a pointer.
	ReturnsPointer *bool `json:"returnsPointer,omitempty" yaml:"returnsPointer,omitempty"`
}

// ParamSpec describes one parameter.
type ParamSpec struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	// Optional requires a trailing variadic parameter.
	Optional bool `json:"optional,omitempty" yaml:"optional,omitempty"`
	// Pointer requires the parameter to be passed by reference.
	Pointer bool `json:"pointer,omitempty" yaml:"pointer,omitempty"`
}

var _ meta.Validator = &Shape{}

// Provider registers Shape with an enforcer.
var Provider = &meta.Provider{
	Help: `contract:Shape { "receiver": "pkg.Type", "params": [ { "name": "x", "type": "int", "optional": false, "pointer": false } ], "returns": "error", "returnsPointer": false }
  Requires the annotated function or method to have exactly the given signature.`,
	New: func() interface{} { return &Shape{} },
}

// Validate implements meta.Validator.
func (s *Shape) Validate(fn sig.Callable) error {
	var f *contract.Func
	if s.Receiver != "" || fn.Kind() == sig.KindMethod {
		m, err := contract.NewMethod(fn, s.Receiver)
		if err != nil {
			return err
		}
		f = &m.Func
	} else {
		var err error
		if f, err = contract.NewFunc(fn); err != nil {
			return err
		}
	}

	for _, p := range s.Params {
		f.AddParam(contract.NewParam(p.Name).
			WithType(p.Type).
			WithOptional(p.Optional).
			WithByReference(p.Pointer))
	}
	f.RequireReturnType(s.Returns)
	if s.ReturnsPointer != nil {
		f.RequireReturnByReference(*s.ReturnsPointer)
	}
	return f.Validate()
}
