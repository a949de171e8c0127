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

// Package gosig adapts go/types objects to the sig introspection
// capability.
//
// Type names use the syntax produced by types.TypeString when every
// package is qualified by its full import path:
//   error
//   int
//   []string
//   github.com/myproject/mypkg.SomeType
package gosig

import (
	"go/types"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// An Oracle answers questions about a program's typesystem.
// All methods are safe to call from multiple goroutines.
type Oracle struct {
	pkgs map[string]*types.Package
	mu   struct {
		sync.RWMutex
		// Failed lookups are memoized as nil.
		resolved map[string]types.Type
	}
}

// NewOracle constructs an Oracle which can resolve type names declared
// in the given packages or any package that they transitively import.
func NewOracle(pkgs ...*types.Package) *Oracle {
	ret := &Oracle{pkgs: make(map[string]*types.Package)}
	for pkgs != nil {
		work := pkgs
		pkgs = nil
		for _, pkg := range work {
			if pkg == nil || ret.pkgs[pkg.Path()] != nil {
				continue
			}
			ret.pkgs[pkg.Path()] = pkg
			pkgs = append(pkgs, pkg.Imports()...)
		}
	}
	ret.mu.resolved = make(map[string]types.Type)
	return ret
}

// Resolve looks up a type by name. Unqualified names are resolved
// against golang's "Universe" scope, while qualified names, such as
// "github.com/myproject/mypkg.SomeType" are resolved against the
// packages known to the Oracle.
func (o *Oracle) Resolve(name string) (types.Type, error) {
	o.mu.RLock()
	found, cached := o.mu.resolved[name]
	o.mu.RUnlock()

	if !cached {
		found = o.lookup(name)
		o.mu.Lock()
		o.mu.resolved[name] = found
		o.mu.Unlock()
	}

	if found == nil {
		return nil, errors.Errorf("unable to find type %q", name)
	}
	return found, nil
}

func (o *Oracle) lookup(name string) types.Type {
	var scope *types.Scope
	tgtName := name
	if idx := strings.LastIndexByte(name, '.'); idx > strings.LastIndexByte(name, '/') {
		pkg := o.pkg(name[:idx])
		if pkg == nil {
			return nil
		}
		scope = pkg.Scope()
		tgtName = name[idx+1:]
	} else {
		scope = types.Universe
	}

	if tn, ok := scope.Lookup(tgtName).(*types.TypeName); ok {
		return tn.Type()
	}
	return nil
}

// pkg finds a package with the given path or a vendored version of
// the same.
func (o *Oracle) pkg(path string) *types.Package {
	if found := o.pkgs[path]; found != nil {
		return found
	}
	for candidate, pkg := range o.pkgs {
		if strings.HasSuffix(candidate, "/vendor/"+path) {
			return pkg
		}
	}
	return nil
}

// IsSubtype reports whether typ is identical to the named type or,
// when the named type is an interface, whether typ or a pointer to typ
// implements it.
func (o *Oracle) IsSubtype(typ types.Type, name string) bool {
	if TypeName(typ) == name {
		return true
	}
	target, err := o.Resolve(name)
	if err != nil {
		return false
	}
	if types.Identical(typ, target) {
		return true
	}
	if named, ok := typ.(*types.Named); ok && named.TypeArgs().Len() > 0 &&
		types.Identical(named.Origin(), target) {
		return true
	}
	intf, ok := target.Underlying().(*types.Interface)
	if !ok {
		return false
	}
	if types.Implements(typ, intf) {
		return true
	}
	if types.IsInterface(typ) {
		return false
	}
	return types.Implements(types.NewPointer(typ), intf)
}

// TypeName returns the name of a type, qualified by full package paths.
func TypeName(typ types.Type) string {
	return types.TypeString(typ, func(pkg *types.Package) string { return pkg.Path() })
}
