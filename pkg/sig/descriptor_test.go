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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptor(t *testing.T) {
	a := assert.New(t)

	iter := Named("Iterator", Named("Traversable"))
	fn := &Descriptor{
		DeclKind: KindMethod,
		FuncName: "Handle",
		Receiver: Named("Component"),
		Args: []Arg{
			{ArgName: "x", ArgType: Builtin("[]int"), ByRef: true},
			{ArgName: "y", ArgType: iter, HasDefault: true},
			{ArgName: "z"},
		},
	}

	a.Equal(KindMethod, fn.Kind())
	a.Equal("Handle", fn.Name())
	a.Equal("Component", fn.Recv().Name())
	a.Nil(fn.Result())
	a.False(fn.ResultByReference())

	params := fn.Params()
	if !a.Len(params, 3) {
		return
	}
	for i, p := range params {
		a.Equal(i, p.Position())
	}
	a.Equal("x", params[0].Name())
	a.True(params[0].ByReference())
	a.False(params[0].Optional())
	a.True(params[1].Optional())
	a.Equal("Iterator", params[1].Type().Name())
	a.Nil(params[2].Type())
}

func TestTypes(t *testing.T) {
	a := assert.New(t)

	a.True(Builtin("int").Builtin())
	a.True(Builtin("int").Is("int"))
	a.False(Builtin("int").Is("integer"))

	base := Named("Traversable")
	iter := Named("Iterator", base)
	seek := Named("SeekableIterator", iter, Named("Countable"))

	a.False(seek.Builtin())
	a.True(seek.Is("SeekableIterator"))
	a.True(seek.Is("Iterator"))
	a.True(seek.Is("Traversable"))
	a.True(seek.Is("Countable"))
	a.False(iter.Is("SeekableIterator"))
	a.False(base.Is("Iterator"))
}

func TestKindString(t *testing.T) {
	a := assert.New(t)
	a.Equal("Function", KindFunction.String())
	a.Equal("Method", KindMethod.String())
	a.Equal("Literal", KindLiteral.String())
	a.Equal("Unknown", Kind(0).String())
}
