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

// Package contract checks the signature of a callable against a
// declarative specification of its parameters and result.
//
// A contract is built from a Func or a Method, to which Param
// specifications are added in positional order:
//   m, err := contract.NewMethod(fn, "github.com/myproject/forms.Component")
//   if err != nil {
//     return err
//   }
//   return m.
//     AddParam(contract.NewParam("form").WithType("[]int").WithByReference(true)).
//     AddParam(contract.NewParam("state").WithType("github.com/myproject/forms.Iterator")).
//     Validate()
//
// Validate must be called exactly once. It runs the checks in a fixed
// order and stops at the first mismatch, so a returned *Violation
// always describes exactly one problem:
//   1. the declaring type (Method only, checked by NewMethod);
//   2. the number of parameters;
//   3. each parameter in turn: name, optionality, reference, type;
//   4. the result type, if one was required;
//   5. returning by reference, if required either way.
//
// Messages name the callable and, where relevant, the 1-based
// position of the argument:
//   The argument 1 of the "github.com/myproject/forms.Component.Handle()"
//   method must not be passed by reference.
package contract
