package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-123", "test-secret", time.Hour, "finance-tracker")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "finance-tracker", claims.Issuer)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateJWT("user-123", "test-secret", -time.Minute, "finance-tracker")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "test-secret")
	assert.Error(t, err)
}
