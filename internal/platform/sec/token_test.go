// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vendora/internal/platform/sec"
)

/*
TestGenerateSecureToken verifies token shape: URL-safe base64 carrying the
requested number of random bytes, unique across calls.
*/
func TestGenerateSecureToken(t *testing.T) {
	token, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	// 32 bytes encode to 43 unpadded base64url characters.
	assert.Len(t, token, 43)

	decoded, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)

	// Two draws never collide.
	other, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

/*
TestPasswordHashRoundTrip verifies hashing accepts the original password and
rejects everything else.
*/
func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	assert.True(t, sec.CheckPasswordHash("correct-horse", hash))
	assert.False(t, sec.CheckPasswordHash("wrong-horse", hash))
}
