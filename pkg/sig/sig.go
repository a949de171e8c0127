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

// Package sig defines the introspection capability that contracts are
// checked against. A Callable can enumerate its parameters in
// declaration order and describe its result without being invoked.
//
// Two implementations are provided: the Descriptor type in this
// package, which is described by literal values, and the gosig package,
// which adapts go/types objects.
package sig

// The Kind of a Callable determines how it is identified in messages.
type Kind int

const (
	// A top-level function declaration:
	//   func Foo() { ... }
	KindFunction Kind = iota + 1
	// A method declaration, either concrete or on an interface:
	//   func (r Receiver) Foo() { ... }
	KindMethod
	// An anonymous function. Contracts cannot be bound to these.
	//   func() { ... }
	KindLiteral
)

// String is suitable for human consumption.
func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "Function"
	case KindMethod:
		return "Method"
	case KindLiteral:
		return "Literal"
	default:
		return "Unknown"
	}
}

// A Type is an introspected declared type.
type Type interface {
	// Name returns the name of the type, in the same syntax that a
	// contract uses to require it.
	Name() string
	// Builtin reports whether the type is predeclared. Builtin types
	// only ever match their own name.
	Builtin() bool
	// Is reports whether the type is equal to, or is a subtype or an
	// implementor of, the named type.
	Is(name string) bool
}

// A Param is one introspected parameter of a Callable.
type Param interface {
	// Name returns the declared name, which may be empty.
	Name() string
	// Position returns the zero-based position of the parameter.
	Position() int
	// Type returns the declared type or nil if none was declared.
	Type() Type
	// Optional reports whether the parameter may be omitted by a caller.
	Optional() bool
	// ByReference reports whether the argument is passed by reference.
	ByReference() bool
}

// A Callable is an introspected function or method.
type Callable interface {
	Kind() Kind
	Name() string
	// Recv returns the declaring type of a method, or nil.
	Recv() Type
	// Params returns the parameters in declaration order.
	Params() []Param
	// Result returns the declared result type or nil if none was
	// declared.
	Result() Type
	// ResultByReference reports whether the result is returned by
	// reference.
	ResultByReference() bool
}
