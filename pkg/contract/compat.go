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

// Compatible reports whether the introspected type satisfies the
// required type name. A builtin type must have exactly the required
// name. Any other type must be the named type, or a subtype or an
// implementor of it.
func Compatible(typ sig.Type, required string) bool {
	if typ.Builtin() {
		return typ.Name() == required
	}
	return typ.Is(required)
}
