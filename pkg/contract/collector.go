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
	"sort"
	"strings"

	"github.com/cockroachdb/sigcheck/pkg/sig"
)

// Tokens which are always available to message templates.
const (
	// TokenFunction identifies the callable, for example:
	//   "github.com/myproject/mypkg.Component.Handle()" method
	//   "Handle()" function
	TokenFunction = "@function"
	// TokenArgument identifies the parameter being checked, for example:
	//   argument 2
	TokenArgument = "@argument"
)

// Tokens maps placeholders to the values they are replaced with.
type Tokens map[string]string

// A Collector accumulates the violations found while checking a single
// callable. Messages are templates whose tokens are replaced when the
// message is added.
//
// A Collector never decides whether a check should run; the checks in
// this package do nothing once Failed returns true.
type Collector struct {
	errors []string
	tokens Tokens
}

// NewCollector constructs a Collector for the callable. An
// *UnsupportedKindError is returned if the callable is neither a
// function nor a method.
func NewCollector(fn sig.Callable) (*Collector, error) {
	c := &Collector{tokens: make(Tokens)}
	switch fn.Kind() {
	case sig.KindMethod:
		recv := "?"
		if r := fn.Recv(); r != nil {
			recv = r.Name()
		}
		c.tokens[TokenFunction] = fmt.Sprintf("%q method", recv+"."+fn.Name()+"()")
	case sig.KindFunction:
		c.tokens[TokenFunction] = fmt.Sprintf("%q function", fn.Name()+"()")
	default:
		return nil, &UnsupportedKindError{Kind: fn.Kind(), Name: fn.Name()}
	}
	return c, nil
}

// Set defines a token.
func (c *Collector) Set(token, value string) { c.tokens[token] = value }

// Get returns the value of a token.
func (c *Collector) Get(token string) (string, bool) {
	v, ok := c.tokens[token]
	return v, ok
}

// Has reports whether the token is defined.
func (c *Collector) Has(token string) bool {
	_, ok := c.tokens[token]
	return ok
}

// Remove undefines a token.
func (c *Collector) Remove(token string) { delete(c.tokens, token) }

// AddError interpolates the template and appends it to the list of
// errors. The extra tokens take precedence over the defined ones and
// apply only to this message.
func (c *Collector) AddError(template string, extra Tokens) {
	merged := make(Tokens, len(c.tokens)+len(extra))
	for k, v := range c.tokens {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	c.errors = append(c.errors, interpolate(template, merged))
}

// Errors returns a copy of the messages added so far.
func (c *Collector) Errors() []string {
	return append([]string(nil), c.errors...)
}

// Failed reports whether any message has been added.
func (c *Collector) Failed() bool { return len(c.errors) > 0 }

// Err returns nil if no messages have been added. Otherwise, the tokens
// are cleared and a *Violation containing all messages, one per line,
// is returned.
func (c *Collector) Err() error {
	if len(c.errors) == 0 {
		return nil
	}
	c.tokens = make(Tokens)
	return &Violation{msg: strings.Join(c.errors, "\n")}
}

// interpolate replaces every token in the template. At any position,
// the longest matching token wins, so "@argumentType" is never mistaken
// for "@argument".
func interpolate(template string, tokens Tokens) string {
	if len(tokens) == 0 {
		return template
	}
	keys := make([]string, 0, len(tokens))
	for k := range tokens {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, tokens[k])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
