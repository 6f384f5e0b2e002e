// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
package model

import "github.com/google/uuid"

// User models a registered user. The ID and Login fields are immutable
// once a user is created, while the Username may be modified later
// (only by the user itself).
// Password verification material is kept out of this struct on purpose;
// see the Credentials struct. Identity resolution only requires the
// login and id of a user, never its credential material.
type User struct {
	ID       uuid.UUID // durable user identity
	Login    string    // unique login name, used for authentication
	Username string    // display name, mutable by the user itself
}

// Credentials holds the salted password verification material of one
// user. The StoredKey is derived from the plaintext password and the
// Salt by the hashing mechanism of the adapter layer, so a plaintext
// password is never persisted. Credentials are consumed by the
// authentication provider alone and never travel through the
// authorization or lifecycle use cases.
type Credentials struct {
	Salt      []byte // random per-user salt
	StoredKey []byte // salted hash of the password
}
