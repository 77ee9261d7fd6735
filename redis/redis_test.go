package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTrackingWithoutRedis(t *testing.T) {
	require.Nil(t, Client)

	require.NoError(t, TrackRefreshToken("jti-1", 1, time.Minute))
	assert.True(t, RefreshTokenValid("jti-1"))

	require.NoError(t, RevokeRefreshToken("jti-1"))
	assert.False(t, RefreshTokenValid("jti-1"))

	// Only tracked ids are accepted.
	assert.False(t, RefreshTokenValid("never-issued"))

	// Expired entries are rejected even if never revoked.
	require.NoError(t, TrackRefreshToken("jti-old", 1, -time.Minute))
	assert.False(t, RefreshTokenValid("jti-old"))
}
