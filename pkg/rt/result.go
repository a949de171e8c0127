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

package rt

import (
	"fmt"
	"go/token"
	"path/filepath"
	"sort"
	"strings"
)

// A Result describes a contract violation by a function or method.
type Result struct {
	// The full name of the function or method.
	Function string
	// The violation message.
	Message string
	// The position of the function or method declaration.
	Pos token.Position
}

// String is suitable for human consumption.
func (r Result) String() string {
	return r.StringRelative("")
}

// StringRelative is suitable for human consumption and makes the
// emitted file path relative to the given base path.
func (r Result) StringRelative(basePath string) string {
	sb := &strings.Builder{}
	if basePath == "" {
		sb.WriteString(r.Pos.Filename)
	} else if rel, err := filepath.Rel(basePath, r.Pos.Filename); err != nil {
		sb.WriteString(r.Pos.Filename)
	} else {
		sb.WriteString(rel)
	}
	sb.WriteString(fmt.Sprintf(":%d:%d: ", r.Pos.Line, r.Pos.Column))

	for idx, line := range strings.Split(r.Message, "\n") {
		if idx > 0 {
			sb.WriteString("\n  ")
		}
		sb.WriteString(line)
	}
	return sb.String()
}

// Results is a sortable slice of Result.
type Results []*Result

var _ sort.Interface = Results{}

// Len implements sort.Interface.
func (r Results) Len() int { return len(r) }

// Less implements sort.Interface. It orders results by their filenames,
// position within the file, and then by message.
func (r Results) Less(i, j int) bool {
	a, b := r[i], r[j]

	if c := strings.Compare(a.Pos.Filename, b.Pos.Filename); c != 0 {
		return c < 0
	}
	if c := a.Pos.Offset - b.Pos.Offset; c != 0 {
		return c < 0
	}
	return a.Message < b.Message
}

// Swap implements sort.Interface.
func (r Results) Swap(i, j int) { r[i], r[j] = r[j], r[i] }

// String is for debugging use only.
func (r Results) String() string {
	sb := &strings.Builder{}
	sorted := append(Results(nil), r...)
	sort.Sort(sorted)
	for _, result := range sorted {
		sb.WriteString(fmt.Sprintf("%s\n", result))
	}
	return sb.String()
}
