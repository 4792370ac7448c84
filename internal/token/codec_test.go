package token

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssueProducesHexOfFixedLength(t *testing.T) {
	c := New("test-secret", false)

	tok := c.Issue(42, "AMS-001")

	assert.Len(t, tok, Length)
	_, err := hex.DecodeString(tok)
	assert.NoError(t, err, "token should be plain hex")
}

func TestIssueDiffersPerLeadAndOverTime(t *testing.T) {
	c := New("test-secret", false)

	t1 := c.Issue(1, "AMS-001")
	t2 := c.Issue(2, "AMS-001")
	assert.NotEqual(t, t1, t2)

	// Millisecond timestamp is part of the preimage in compat mode.
	first := c.Issue(7, "AMS-001")
	time.Sleep(3 * time.Millisecond)
	second := c.Issue(7, "AMS-001")
	assert.NotEqual(t, first, second)
}

// Compat mode: validation checks shape only. The token value is never
// re-derived, so an attacker who knows lead id and practice code but not
// the token still passes with any 64-char string. That is the historical
// behavior the mailed links depend on.
func TestValidateCompatModeChecksLengthOnly(t *testing.T) {
	c := New("test-secret", false)

	t.Run("issued token passes", func(t *testing.T) {
		tok := c.Issue(42, "AMS-001")
		assert.True(t, c.Validate(tok, 42, "AMS-001"))
	})

	t.Run("any 64-char string passes", func(t *testing.T) {
		assert.True(t, c.Validate(strings.Repeat("a", 64), 42, "AMS-001"))
	})

	t.Run("issued token passes for a different lead", func(t *testing.T) {
		tok := c.Issue(42, "AMS-001")
		assert.True(t, c.Validate(tok, 999, "OTHER"))
	})

	t.Run("wrong length fails", func(t *testing.T) {
		assert.False(t, c.Validate(strings.Repeat("a", 63), 42, "AMS-001"))
		assert.False(t, c.Validate(strings.Repeat("a", 65), 42, "AMS-001"))
		assert.False(t, c.Validate("", 42, "AMS-001"))
	})
}

func TestValidateStrictModeRederivesToken(t *testing.T) {
	c := New("test-secret", true)

	t.Run("issued token passes", func(t *testing.T) {
		tok := c.Issue(42, "AMS-001")
		assert.True(t, c.Validate(tok, 42, "AMS-001"))
	})

	t.Run("issue is deterministic", func(t *testing.T) {
		assert.Equal(t, c.Issue(42, "AMS-001"), c.Issue(42, "AMS-001"))
	})

	t.Run("token bound to lead and practice", func(t *testing.T) {
		tok := c.Issue(42, "AMS-001")
		assert.False(t, c.Validate(tok, 43, "AMS-001"))
		assert.False(t, c.Validate(tok, 42, "RTD-002"))
	})

	t.Run("right shape wrong value fails", func(t *testing.T) {
		assert.False(t, c.Validate(strings.Repeat("a", 64), 42, "AMS-001"))
	})

	t.Run("different secret fails", func(t *testing.T) {
		other := New("other-secret", true)
		tok := other.Issue(42, "AMS-001")
		assert.False(t, c.Validate(tok, 42, "AMS-001"))
	})
}
