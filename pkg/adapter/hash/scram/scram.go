// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram presents a salted password hashing scheme on top of
// the SCRAM-SHA-256 and SCRAM-SHA-1 key derivation, as defined by
// RFC 5802 and RFC 7677. Only the StoredKey part of the SCRAM
// credentials is kept at rest; a presented password is verified by
// re-deriving the StoredKey with the per-user salt and comparing the
// two keys in constant time. The full challenge-response conversation
// of SCRAM is not performed, since the passwords arrive over the
// HTTP Basic scheme and only their at-rest format follows SCRAM.
package scram

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/xdg-go/scram"
)

// Mechanism provides a Salted Challenge Response Authentication
// Mechanism (SCRAM) based key derivation having a fixed underlying
// hash algorithm and iterations count.
//
// It implements the core layer auth.Verifier interface, so it may be
// used in the use cases layer without any dependency on the actual
// implementation. This package relies on the github.com/xdg-go/scram
// module for the SCRAM key derivation.
type Mechanism struct {
	hashGenerator scram.HashGeneratorFcn
	outLen        int // bytes
	iters         int
	name          string
}

// MinIters is the minimum acceptable KDF iterations count, as
// required by RFC 5802. The RFC 7677 recommends 15000 or more.
const MinIters = 4096

// SHA1 returns a new Mechanism instance using the SHA1 as its
// underlying hash algorithm and iters KDF iterations.
func SHA1(iters int) (*Mechanism, error) {
	return newMechanism(&Mechanism{
		hashGenerator: scram.SHA1,
		outLen:        160 / 8,
		iters:         iters,
		name:          "SCRAM-SHA-1",
	})
}

// SHA256 returns a new Mechanism instance using the SHA256 as its
// underlying hash algorithm and iters KDF iterations.
func SHA256(iters int) (*Mechanism, error) {
	return newMechanism(&Mechanism{
		hashGenerator: scram.SHA256,
		outLen:        256 / 8,
		iters:         iters,
		name:          "SCRAM-SHA-256",
	})
}

func newMechanism(m *Mechanism) (*Mechanism, error) {
	if m.iters < MinIters {
		return nil, fmt.Errorf(
			"iters (%d) is less than %d", m.iters, MinIters,
		)
	}
	return m, nil
}

// NewSalt generates a fresh random salt with the same length as the
// underlying hash function output.
func (m *Mechanism) NewSalt() ([]byte, error) {
	salt := make([]byte, m.outLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("creating random salt: %w", err)
	}
	return salt, nil
}

// StoredKey derives the SCRAM StoredKey of the pass plaintext
// password, salted with the salt bytes. The pass will be normalized
// according to the SASLprep profile (defined by RFC 4013) of the
// stringprep algorithm (which is defined by RFC 3454) and any failure
// in that normalization returns an error.
// The derived key is suitable for at-rest storage since the ClientKey
// may not be computed back from it.
func (m *Mechanism) StoredKey(pass string, salt []byte) ([]byte, error) {
	if pass == "" {
		return nil, errors.New("password must be non-empty")
	}
	c, err := m.hashGenerator.NewClient("username", pass, "authzID")
	if err != nil {
		return nil, fmt.Errorf("creating SCRAM client: %w", err)
	}
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(salt),
		Iters: m.iters,
	})
	return sc.StoredKey, nil
}

// Verify reports whether the pass plaintext password, salted with the
// salt bytes, derives the storedKey verification material. The two
// keys are compared in constant time. A mismatch is reported as
// (false, nil); an error indicates a key derivation failure alone.
func (m *Mechanism) Verify(pass string, salt, storedKey []byte) (bool, error) {
	derived, err := m.StoredKey(pass, salt)
	if err != nil {
		return false, fmt.Errorf("deriving stored key: %w", err)
	}
	return subtle.ConstantTimeCompare(derived, storedKey) == 1, nil
}
