package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferralCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^PTR-[A-Z0-9]{6}$`)
	for i := 0; i < 50; i++ {
		code, err := GeneratePartnerReferralCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}

	code, err := GenerateNetworkReferralCode()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^NET-[A-Z0-9]{6}$`), code)
}

func TestGenerateReferralCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := GeneratePartnerReferralCode()
		require.NoError(t, err)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestSanitizeEmail(t *testing.T) {
	email, err := SanitizeEmail("  Partner@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "partner@example.com", email)

	_, err = SanitizeEmail("not-an-email")
	assert.Error(t, err)
}

func TestSanitizeInputStripsScripts(t *testing.T) {
	out := SanitizeInput("hello<script>alert(1)</script>")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hello")
}
