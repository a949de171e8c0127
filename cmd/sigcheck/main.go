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

// sigcheck enforces the signature contracts declared in doc comments.
//
//   sigcheck enforce --config sigcheck.yaml ./...
package main

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/sigcheck/pkg/contract/shape"
	"github.com/cockroachdb/sigcheck/pkg/meta"
	"github.com/cockroachdb/sigcheck/pkg/rt"
)

func main() {
	name := "sigcheck"
	if exec, err := os.Executable(); err == nil {
		name = filepath.Base(exec)
	}

	e := &rt.Enforcer{
		Contracts: meta.Providers{
			"Shape": shape.Provider,
		},
		Name: name,
	}
	e.Main()
}
