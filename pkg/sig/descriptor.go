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

package sig

// Descriptor is a Callable which is described by literal values.
//
//   iter := sig.Named("Iterator", sig.Named("Traversable"))
//   fn := &sig.Descriptor{
//     DeclKind: sig.KindMethod,
//     FuncName: "Handle",
//     Receiver: sig.Named("Component"),
//     Args: []sig.Arg{
//       {ArgName: "x", ArgType: sig.Builtin("[]int"), ByRef: true},
//       {ArgName: "y", ArgType: iter},
//     },
//   }
type Descriptor struct {
	DeclKind Kind
	FuncName string
	// Receiver is the declaring type, required for KindMethod.
	Receiver Type
	Args     []Arg
	// Returns may be nil to indicate that no result type is declared.
	Returns   Type
	ReturnRef bool
}

var _ Callable = &Descriptor{}

// Arg describes one parameter of a Descriptor.
type Arg struct {
	ArgName string
	// ArgType may be nil to indicate that no type is declared.
	ArgType    Type
	HasDefault bool
	ByRef      bool
}

// Kind implements Callable.
func (d *Descriptor) Kind() Kind { return d.DeclKind }

// Name implements Callable.
func (d *Descriptor) Name() string { return d.FuncName }

// Recv implements Callable.
func (d *Descriptor) Recv() Type { return d.Receiver }

// Params implements Callable.
func (d *Descriptor) Params() []Param {
	ret := make([]Param, len(d.Args))
	for i := range d.Args {
		ret[i] = &argParam{Arg: d.Args[i], pos: i}
	}
	return ret
}

// Result implements Callable.
func (d *Descriptor) Result() Type { return d.Returns }

// ResultByReference implements Callable.
func (d *Descriptor) ResultByReference() bool { return d.ReturnRef }

type argParam struct {
	Arg
	pos int
}

var _ Param = &argParam{}

func (p *argParam) Name() string      { return p.ArgName }
func (p *argParam) Position() int     { return p.pos }
func (p *argParam) Optional() bool    { return p.HasDefault }
func (p *argParam) ByReference() bool { return p.ByRef }
func (p *argParam) Type() Type        { return p.ArgType }

// Builtin returns a predeclared Type which only matches its own name.
func Builtin(name string) Type {
	return builtinType(name)
}

type builtinType string

func (b builtinType) Name() string        { return string(b) }
func (b builtinType) Builtin() bool       { return true }
func (b builtinType) Is(name string) bool { return string(b) == name }

// Named returns a declared Type. It is a subtype of each of the given
// supertypes and, transitively, of their supertypes.
func Named(name string, supertypes ...Type) Type {
	return &namedType{name: name, supers: supertypes}
}

type namedType struct {
	name   string
	supers []Type
}

func (n *namedType) Name() string  { return n.name }
func (n *namedType) Builtin() bool { return false }

func (n *namedType) Is(name string) bool {
	if n.name == name {
		return true
	}
	for _, super := range n.supers {
		if super.Is(name) {
			return true
		}
	}
	return false
}
