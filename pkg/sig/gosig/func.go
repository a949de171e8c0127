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

package gosig

import (
	"go/types"
	"strings"

	"github.com/cockroachdb/sigcheck/pkg/sig"
)

// Func adapts a function declaration to the sig.Callable interface.
//
// Go has no default values or reference parameters, so the following
// conventions apply:
//  * A trailing variadic parameter is optional and its type is the
//    element type of the slice.
//  * A parameter of pointer type is passed by reference and its type
//    is the element type of the pointer.
//  * A single result of pointer type is returned by reference.
//  * Multiple results are presented as one tuple type, such as
//    "(int, error)", which only matches its own name.
type Func struct {
	kind      sig.Kind
	name      string
	obj       *types.Func
	oracle    *Oracle
	signature *types.Signature
}

var _ sig.Callable = &Func{}

// Func returns a Callable for the declared function or method.
func (o *Oracle) Func(fn *types.Func) *Func {
	s := fn.Type().(*types.Signature)
	kind := sig.KindFunction
	if s.Recv() != nil {
		kind = sig.KindMethod
	}
	return &Func{kind: kind, name: fn.Name(), obj: fn, oracle: o, signature: s}
}

// Literal returns a Callable for an anonymous function signature.
func (o *Oracle) Literal(name string, s *types.Signature) *Func {
	return &Func{kind: sig.KindLiteral, name: name, oracle: o, signature: s}
}

// Obj returns the underlying declaration, which will be nil for
// literals.
func (f *Func) Obj() *types.Func { return f.obj }

// Kind implements sig.Callable.
func (f *Func) Kind() sig.Kind { return f.kind }

// Name implements sig.Callable.
func (f *Func) Name() string { return f.name }

// Recv implements sig.Callable.
func (f *Func) Recv() sig.Type {
	recv := f.signature.Recv()
	if recv == nil {
		return nil
	}
	typ, _ := deref(recv.Type())
	// Methods of a generic type are declared on the type itself, not on
	// its instantiation with its own type parameters.
	if named, ok := typ.(*types.Named); ok && named.TypeArgs().Len() > 0 {
		obj := named.Obj()
		name := obj.Name()
		if obj.Pkg() != nil {
			name = obj.Pkg().Path() + "." + name
		}
		return &goType{name: name, oracle: f.oracle, typ: typ}
	}
	return f.oracle.wrap(typ)
}

// Params implements sig.Callable.
func (f *Func) Params() []sig.Param {
	params := f.signature.Params()
	ret := make([]sig.Param, params.Len())
	for i := range ret {
		v := params.At(i)
		p := &param{name: v.Name(), pos: i}
		typ := v.Type()
		if f.signature.Variadic() && i == len(ret)-1 {
			p.optional = true
			if slice, ok := typ.(*types.Slice); ok {
				typ = slice.Elem()
			}
		}
		typ, p.byRef = deref(typ)
		p.typ = f.oracle.wrap(typ)
		ret[i] = p
	}
	return ret
}

// Result implements sig.Callable.
func (f *Func) Result() sig.Type {
	results := f.signature.Results()
	switch results.Len() {
	case 0:
		return nil
	case 1:
		typ, _ := deref(results.At(0).Type())
		return f.oracle.wrap(typ)
	default:
		names := make([]string, results.Len())
		for i := range names {
			names[i] = TypeName(results.At(i).Type())
		}
		name := "(" + strings.Join(names, ", ") + ")"
		return &goType{name: name, builtin: true, oracle: f.oracle, typ: results}
	}
}

// ResultByReference implements sig.Callable.
func (f *Func) ResultByReference() bool {
	results := f.signature.Results()
	if results.Len() != 1 {
		return false
	}
	_, ptr := deref(results.At(0).Type())
	return ptr
}

// deref strips one level of pointer indirection.
func deref(typ types.Type) (types.Type, bool) {
	if ptr, ok := typ.(*types.Pointer); ok {
		return ptr.Elem(), true
	}
	return typ, false
}

type param struct {
	byRef    bool
	name     string
	optional bool
	pos      int
	typ      sig.Type
}

var _ sig.Param = &param{}

func (p *param) ByReference() bool { return p.byRef }
func (p *param) Name() string      { return p.name }
func (p *param) Optional() bool    { return p.optional }
func (p *param) Position() int     { return p.pos }
func (p *param) Type() sig.Type    { return p.typ }

// goType adapts a types.Type to sig.Type.
type goType struct {
	builtin bool
	name    string
	oracle  *Oracle
	typ     types.Type
}

var _ sig.Type = &goType{}

func (o *Oracle) wrap(typ types.Type) sig.Type {
	_, basic := typ.(*types.Basic)
	return &goType{name: TypeName(typ), builtin: basic, oracle: o, typ: typ}
}

func (t *goType) Builtin() bool { return t.builtin }
func (t *goType) Name() string  { return t.name }

func (t *goType) Is(name string) bool {
	if t.builtin {
		return t.name == name
	}
	return t.oracle.IsSubtype(t.typ, name)
}
