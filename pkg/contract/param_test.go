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

import (
	"testing"

	"github.com/cockroachdb/sigcheck/pkg/sig"
	"github.com/stretchr/testify/assert"
)

func TestCompatible(t *testing.T) {
	a := assert.New(t)

	i := sig.Builtin("int")
	a.True(Compatible(i, "int"))
	a.False(Compatible(i, "integer"))
	a.False(Compatible(i, "Traversable"))

	a.True(Compatible(iterator, "Iterator"))
	a.True(Compatible(iterator, "Traversable"))
	a.False(Compatible(iterator, "Fixture"))
	// An ancestor does not satisfy a descendant.
	a.False(Compatible(traversable, "Iterator"))
}

func TestParam(t *testing.T) {
	const id = `"Fixture.m()" method`

	str := sig.Builtin("string")
	tcs := map[string]struct {
		spec     *Param
		arg      sig.Arg
		expected string
	}{
		"match": {
			spec: NewParam("string").WithType(" string "),
			arg:  sig.Arg{ArgName: "string", ArgType: str},
		},
		"match optional reference": {
			spec: NewParam("string").WithType("string").WithOptional(true).WithByReference(true),
			arg:  sig.Arg{ArgName: "string", ArgType: str, HasDefault: true, ByRef: true},
		},
		"match subtype": {
			spec: NewParam("it").WithType("Traversable"),
			arg:  sig.Arg{ArgName: "it", ArgType: iterator},
		},
		"wrong name": {
			spec:     NewParam("string1").WithType("string"),
			arg:      sig.Arg{ArgName: "string", ArgType: str},
			expected: `The argument 1 of the ` + id + ` has the "string" name, but must be "string1".`,
		},
		"without type": {
			spec:     NewParam("string"),
			arg:      sig.Arg{ArgName: "string", ArgType: str},
			expected: `The type of the argument 1 of the ` + id + ` is not specified.`,
		},
		"must not be optional": {
			spec:     NewParam("string").WithType("string"),
			arg:      sig.Arg{ArgName: "string", ArgType: str, HasDefault: true},
			expected: `The argument 1 of the ` + id + ` must not be optional.`,
		},
		"must be optional": {
			spec:     NewParam("string").WithType("string").WithOptional(true),
			arg:      sig.Arg{ArgName: "string", ArgType: str},
			expected: `The argument 1 of the ` + id + ` must be optional.`,
		},
		"must not be passed by reference": {
			spec:     NewParam("string").WithType("string"),
			arg:      sig.Arg{ArgName: "string", ArgType: str, ByRef: true},
			expected: `The argument 1 of the ` + id + ` must not be passed by reference.`,
		},
		"must be passed by reference": {
			spec:     NewParam("string").WithType("string").WithByReference(true),
			arg:      sig.Arg{ArgName: "string", ArgType: str},
			expected: `The argument 1 of the ` + id + ` must be passed by reference.`,
		},
		"none given": {
			spec:     NewParam("string").WithType("string"),
			arg:      sig.Arg{ArgName: "string"},
			expected: `The type of the argument 1 of the ` + id + ` must be of "string" type, none given.`,
		},
		"wrong type": {
			spec:     NewParam("string").WithType("string1"),
			arg:      sig.Arg{ArgName: "string", ArgType: str},
			expected: `The argument 1 of the ` + id + ` must be of "string1" type, "string" given.`,
		},
		"ancestor given": {
			spec:     NewParam("it").WithType("Iterator"),
			arg:      sig.Arg{ArgName: "it", ArgType: traversable},
			expected: `The argument 1 of the ` + id + ` must be of "Iterator" type, "Traversable" given.`,
		},
		// Name is checked before everything else.
		"name first": {
			spec:     NewParam("other"),
			arg:      sig.Arg{ArgName: "string", HasDefault: true, ByRef: true},
			expected: `The argument 1 of the ` + id + ` has the "string" name, but must be "other".`,
		},
		// Optionality is checked before reference and type.
		"optional before reference": {
			spec:     NewParam("string").WithType("int"),
			arg:      sig.Arg{ArgName: "string", ArgType: str, HasDefault: true, ByRef: true},
			expected: `The argument 1 of the ` + id + ` must not be optional.`,
		},
		"reference before type": {
			spec:     NewParam("string").WithType("int"),
			arg:      sig.Arg{ArgName: "string", ArgType: str, ByRef: true},
			expected: `The argument 1 of the ` + id + ` must not be passed by reference.`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			a := assert.New(t)
			err := tc.spec.Validate(method("m", tc.arg), 0)
			if tc.expected == "" {
				a.NoError(err)
			} else {
				a.EqualError(err, tc.expected)
				a.True(IsViolation(err))
			}
		})
	}
}

func TestParamPosition(t *testing.T) {
	a := assert.New(t)
	fn := typical()

	err := NewParam("iterator").WithType("Fixture").Validate(fn, 1)
	a.EqualError(err,
		`The argument 2 of the "Fixture.typical()" method must be of "Fixture" type, "Iterator" given.`)

	a.Error(NewParam("x").Validate(fn, 2))
	a.Error(NewParam("x").Validate(fn, -1))

	err = NewParam("x").Validate(&sig.Descriptor{DeclKind: sig.KindLiteral}, 0)
	a.True(IsUnsupportedKind(err))
}

func TestParamSkipsWhenFailed(t *testing.T) {
	a := assert.New(t)
	c, err := NewCollector(typical())
	if !a.NoError(err) {
		return
	}
	c.AddError("earlier", nil)

	params := typical().Params()
	NewParam("wrong").Check(params[0], c)

	a.Equal([]string{"earlier"}, c.Errors())
	a.False(c.Has(TokenArgument), "no token is set once the collector has failed")
}
