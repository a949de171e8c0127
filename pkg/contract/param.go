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
	"fmt"
	"strings"

	"github.com/cockroachdb/sigcheck/pkg/sig"
	"github.com/pkg/errors"
)

// Param specifies the required shape of one parameter.
//
//   contract.NewParam("form").
//     WithType("[]int").
//     WithByReference(true)
type Param struct {
	byRef    bool
	name     string
	optional bool
	typ      string
}

// NewParam constructs a Param which requires the given name. The
// parameter is required to be mandatory and passed by value until
// configured otherwise.
func NewParam(name string) *Param {
	return &Param{name: name}
}

// WithType sets the required type name.
func (p *Param) WithType(typ string) *Param {
	p.typ = strings.TrimSpace(typ)
	return p
}

// WithOptional sets whether the parameter must be optional.
func (p *Param) WithOptional(optional bool) *Param {
	p.optional = optional
	return p
}

// WithByReference sets whether the parameter must be passed by
// reference.
func (p *Param) WithByReference(byRef bool) *Param {
	p.byRef = byRef
	return p
}

// Check compares the parameter against the specification and reports
// into the collector. Only the first mismatch is reported; once the
// collector has failed, nothing else is checked.
func (p *Param) Check(param sig.Param, c *Collector) {
	if c.Failed() {
		return
	}
	c.Set(TokenArgument, fmt.Sprintf("argument %d", param.Position()+1))

	p.checkName(param, c)
	p.checkOptional(param, c)
	p.checkReference(param, c)
	p.checkType(param, c)
}

// Validate checks one parameter of the callable on its own, returning
// a *Violation if it does not match.
func (p *Param) Validate(fn sig.Callable, position int) error {
	c, err := NewCollector(fn)
	if err != nil {
		return err
	}
	params := fn.Params()
	if position < 0 || position >= len(params) {
		return errors.Errorf("%s has no parameter at position %d", fn.Name(), position)
	}
	p.Check(params[position], c)
	return c.Err()
}

func (p *Param) checkName(param sig.Param, c *Collector) {
	if c.Failed() {
		return
	}
	if given := param.Name(); given != p.name {
		c.AddError(
			`The @argument of the @function has the "@givenName" name, but must be "@requiredName".`,
			Tokens{"@givenName": given, "@requiredName": p.name})
	}
}

func (p *Param) checkOptional(param sig.Param, c *Collector) {
	if c.Failed() {
		return
	}
	switch optional := param.Optional(); {
	case p.optional && !optional:
		c.AddError("The @argument of the @function must be optional.", nil)
	case !p.optional && optional:
		c.AddError("The @argument of the @function must not be optional.", nil)
	}
}

func (p *Param) checkReference(param sig.Param, c *Collector) {
	if c.Failed() {
		return
	}
	switch byRef := param.ByReference(); {
	case p.byRef && !byRef:
		c.AddError("The @argument of the @function must be passed by reference.", nil)
	case !p.byRef && byRef:
		c.AddError("The @argument of the @function must not be passed by reference.", nil)
	}
}

func (p *Param) checkType(param sig.Param, c *Collector) {
	if c.Failed() {
		return
	}
	typ := param.Type()
	switch {
	case p.typ == "":
		c.AddError("The type of the @argument of the @function is not specified.", nil)
	case typ == nil:
		c.AddError(
			`The type of the @argument of the @function must be of "@argumentType" type, none given.`,
			Tokens{"@argumentType": p.typ})
	case !Compatible(typ, p.typ):
		c.AddError(
			`The @argument of the @function must be of "@argumentType" type, "@parameterType" given.`,
			Tokens{"@argumentType": p.typ, "@parameterType": typ.Name()})
	}
}
