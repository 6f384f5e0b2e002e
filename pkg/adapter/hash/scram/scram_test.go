// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"testing"

	"github.com/momeni/parking-backend/pkg/adapter/hash/scram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	for _, newMech := range map[string]func(int) (*scram.Mechanism, error){
		"sha1":   scram.SHA1,
		"sha256": scram.SHA256,
	} {
		m, err := newMech(scram.MinIters)
		require.NoError(t, err)
		salt, err := m.NewSalt()
		require.NoError(t, err)
		key, err := m.StoredKey("open sesame", salt)
		require.NoError(t, err)

		ok, err := m.Verify("open sesame", salt, key)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = m.Verify("open Sesame", salt, key)
		require.NoError(t, err)
		assert.False(t, ok, "a mismatch is not an error")

		salt2, err := m.NewSalt()
		require.NoError(t, err)
		ok, err = m.Verify("open sesame", salt2, key)
		require.NoError(t, err)
		assert.False(t, ok, "the salt participates in the key")
	}
}

func TestStoredKeyRejectsEmptyPassword(t *testing.T) {
	m, err := scram.SHA256(scram.MinIters)
	require.NoError(t, err)
	_, err = m.StoredKey("", []byte("salt"))
	assert.EqualError(t, err, "password must be non-empty")
}

func TestTooFewIterations(t *testing.T) {
	_, err := scram.SHA256(scram.MinIters - 1)
	assert.Error(t, err)
	_, err = scram.SHA1(0)
	assert.Error(t, err)
}
