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

// Package rt contains the runtime which binds signature contracts to
// annotated functions and methods and reports violations.
package rt

import (
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/cockroachdb/sigcheck/pkg/sig"
	"github.com/cockroachdb/sigcheck/pkg/sig/gosig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Example:
//   // contract:SomeContract {....}
//   /* contract:SomeContract {....} */
var commentSyntax = regexp.MustCompile(
	`^(?s)(?://|/\*)[[:space:]]*contract:([[:alnum:]]+)(.*?)(?:\*/)?$`)

//   ^ s-flag enables dot to match newline
//          ^ Non-capturing group to match leading comment marker
// Ignore leading WS   ^
// Look for the literal contract: ^
//          Contract names are golang idents ^
//                Configuration data, non-greedy match ^
//                              Ignore closing block comment ^

// A target describes a binding between a contract and a function or
// method.
type target struct {
	// The raw JSON configuration string, extracted from the doc comment.
	config string
	// The name of the contract, which could be an alias.
	contract string
	// Underlying source data, for position lookups.
	fset *token.FileSet
	// YAML configuration, set when the target came from an alias.
	node *yaml.Node
	// The function or method on which the contract is bound.
	object *types.Func
	// The position of the binding comment.
	pos token.Pos
}

// Pos returns the position of the binding comment.
func (t *target) Pos() token.Pos {
	return t.pos
}

// String is for debugging use only.
func (t *target) String() string {
	pos := t.fset.Position(t.Pos())
	return fmt.Sprintf("%s:%d:%d %s := %s %s",
		filepath.Base(pos.Filename), pos.Line, pos.Column,
		t.object.FullName(), t.contract, t.config)
}

var _ sort.Interface = targets{}

// targets will sort based on their element's token.Pos.
type targets []*target

func (t targets) Len() int           { return len(t) }
func (t targets) Less(i, j int) bool { return t[i].Pos() < t[j].Pos() }
func (t targets) Swap(i, j int)      { t[i], t[j] = t[j], t[i] }

// An expansion is one entry of an alias.
type expansion struct {
	Contract string    `yaml:"contract"`
	Config   yaml.Node `yaml:"config"`
}

// config is the contents of the file named by Enforcer.Config.
//
//   aliases:
//     Handler:
//       - contract: Shape
//         config:
//           returns: error
type config struct {
	Aliases map[string][]*expansion `yaml:"aliases"`
}

// expand expands an alias target into its terminal targets or returns
// a terminal target as-is.
func expand(aliases map[string][]*expansion, base *target) (targets, error) {
	if aliases[base.contract] == nil {
		return targets{base}, nil
	}

	var term targets
	// Detect recursively-defined aliases. The path holds the aliases
	// which are currently being expanded.
	path := map[string]bool{}
	var visit func(name string) error
	visit = func(name string) error {
		if path[name] {
			return errors.Errorf("%s detected recursive contract %q",
				base.fset.Position(base.Pos()), name)
		}
		path[name] = true
		defer delete(path, name)

		for _, exp := range aliases[name] {
			if aliases[exp.Contract] != nil {
				if err := visit(exp.Contract); err != nil {
					return err
				}
				continue
			}
			dup := *base
			dup.contract = exp.Contract
			dup.config = ""
			dup.node = &exp.Config
			term = append(term, &dup)
		}
		return nil
	}
	if err := visit(base.contract); err != nil {
		return nil, err
	}
	return term, nil
}

// commentReader yields the metadata bound to each function by the
// enforcer.
type commentReader struct {
	bindings map[*types.Func][]interface{}
}

// MethodMetadata implements meta.Reader. Callables which do not come
// from the loaded packages have no metadata.
func (r *commentReader) MethodMetadata(fn sig.Callable) ([]interface{}, error) {
	f, ok := fn.(*gosig.Func)
	if !ok || f.Obj() == nil {
		return nil, errors.Errorf("%s was not declared in the loaded packages", fn.Name())
	}
	return r.bindings[f.Obj()], nil
}
