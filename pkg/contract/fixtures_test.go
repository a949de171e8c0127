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

// Types shared by the tests in this package.
var (
	traversable = sig.Named("Traversable")
	iterator    = sig.Named("Iterator", traversable)
	fixture     = sig.Named("Fixture")
	child       = sig.Named("Child", fixture)
)

// method describes a method declared on the fixture type.
func method(name string, args ...sig.Arg) *sig.Descriptor {
	return &sig.Descriptor{
		DeclKind: sig.KindMethod,
		FuncName: name,
		Receiver: fixture,
		Args:     args,
	}
}

// typical describes:
//   func (Fixture) typical(string string, iterator Iterator) *int
func typical() *sig.Descriptor {
	d := method("typical",
		sig.Arg{ArgName: "string", ArgType: sig.Builtin("string")},
		sig.Arg{ArgName: "iterator", ArgType: iterator},
	)
	d.Returns = sig.Builtin("int")
	d.ReturnRef = true
	return d
}

// typicalParams returns specifications which match typical().
func typicalParams() (*Param, *Param) {
	return NewParam("string").WithType("string"),
		NewParam("iterator").WithType("Iterator")
}
