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

// Package testdata contains annotated declarations which are checked
// by the rt tests.
package testdata

import "io"

// Iterator walks a sequence.
type Iterator interface {
	//contract:Shape { "returns" : "bool", "returnsPointer" : false }
	Next() bool

	//contract:Shape { "returns" : "int" }
	Value() string
}

// Component handles forms.
type Component struct{}

// Handle is bound through the Handler alias.
//
//contract:Handler
func (c *Component) Handle(form *[]int, state Iterator) error { return nil }

// Reset is bound through the Handler alias, but takes form by value.
//
//contract:Handler
func (c *Component) Reset(form []int, state Iterator) error { return nil }

// Count has a JSON configuration.
/* contract:Shape {
  "params" : [ { "name" : "r", "type" : "io.Reader" } ],
  "returns" : "int"
} */
func Count(r io.Reader) int { return 0 }

// Join is bound twice; the second binding does not match.
//
//contract:Shape { "params" : [ { "name" : "parts", "type" : "string", "optional" : true } ] }
//contract:Shape { "params" : [ { "name" : "parts", "type" : "string" } ] }
func Join(parts ...string) string { return "" }

// Unbound carries no contract and is never checked.
func Unbound(x int) {}
