// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package auth exports the expected interface for the password
// verification mechanism. For the corresponding salted hashing
// implementation, check the adapter layer.
//
// Interfaces should be defined based on the use cases requirements.
// The use cases layer only needs to know whether a presented plaintext
// password matches the stored verification material of a user; how
// that material is derived (hash family, iteration count, encoding)
// is an adapter layer concern and must stay opaque here, so the
// mechanism can be replaced without touching the use cases.
package auth

// Verifier represents the expectations from a password verification
// implementation. A Verifier never learns whether the stored material
// belongs to an existing user; callers are responsible for the user
// lookup and for keeping the timing of present and absent users
// indistinguishable where that matters.
type Verifier interface {
	// Verify reports whether the pass plaintext password, salted with
	// the salt bytes, derives the storedKey verification material.
	// An error indicates a failure of the mechanism itself, not a
	// mismatch; a mismatch is reported as (false, nil).
	Verify(pass string, salt, storedKey []byte) (bool, error)
}
