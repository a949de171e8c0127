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

	"github.com/cockroachdb/sigcheck/pkg/sig"
	"github.com/pkg/errors"
)

// ErrConsumed is returned when a contract is validated more than once.
var ErrConsumed = errors.New("contract has already been validated")

// A Violation describes why a callable does not satisfy its contract.
// Its message is final; further tokens cannot be applied to it.
type Violation struct {
	msg string
}

// Error implements error.
func (v *Violation) Error() string { return v.msg }

// UnsupportedKindError is returned when a Collector is constructed for
// a callable which is neither a function nor a method.
type UnsupportedKindError struct {
	Kind sig.Kind
	Name string
}

// Error implements error.
func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("%q must be a %s or a %s, %s given",
		e.Name, sig.KindFunction, sig.KindMethod, e.Kind)
}

// IsViolation reports whether the error, or any error that it wraps,
// is a *Violation.
func IsViolation(err error) bool {
	var v *Violation
	return errors.As(err, &v)
}

// IsUnsupportedKind reports whether the error, or any error that it
// wraps, is an *UnsupportedKindError.
func IsUnsupportedKind(err error) bool {
	var u *UnsupportedKindError
	return errors.As(err, &u)
}
