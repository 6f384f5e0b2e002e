// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authz provides the composable permission-checking protocol
// which gates every mutating use case. Each business rule is
// encapsulated by one authorization command, exposing a single
// Authorize operation which fails with an Authorization categorized
// error when the rule is violated and succeeds silently otherwise.
// Commands are side-effect free; each one performs at most one read
// against the users or ownership repositories (or a pure in-memory
// comparison), so they may be reordered freely for performance
// without affecting the outcome.
// The Validator composes commands sequentially, short-circuiting on
// the first failure. It operates purely on the Command capability and
// never inspects concrete command identities.
package authz

import "context"

// Command is a single, independently evaluable permission predicate.
type Command interface {
	// Authorize fails with an Authorization categorized error when
	// the encapsulated rule is violated, otherwise succeeds silently.
	// Unexpected repository failures propagate uncategorized.
	Authorize(ctx context.Context) error
}

// Validator runs an ordered series of authorization commands.
// The zero value is ready to use; Validator is stateless and safe for
// concurrent use.
type Validator struct{}

// NewValidator instantiates a Validator.
func NewValidator() Validator {
	return Validator{}
}

// Validate succeeds if and only if every command succeeds. Commands
// run in the given order and the first failing command's own error is
// returned, without evaluating the remaining commands. Since all
// commands are independent predicates over immutable-at-this-instant
// state, the order only determines which error surfaces first, never
// the overall outcome.
func (v Validator) Validate(ctx context.Context, cmds ...Command) error {
	for _, cmd := range cmds {
		if err := cmd.Authorize(ctx); err != nil {
			return err
		}
	}
	return nil
}
