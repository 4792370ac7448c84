// Package token issues and checks the keyed tokens embedded in lead action
// links (the "mark appointment booked" button in practice mail).
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Length is the hex length of an action token: sha256 gives 32 bytes,
// hex-encoded to 64 characters.
const Length = 64

type Codec struct {
	secret []byte
	strict bool
}

func New(secret string, strict bool) *Codec {
	return &Codec{secret: []byte(secret), strict: strict}
}

// Issue derives the token for one lead/practice pair.
//
// Compat mode mixes the issue time into the preimage, so repeated sends for
// the same lead carry distinct tokens. Strict mode drops the time component:
// Validate must be able to re-derive the token from the link parameters
// alone.
func (c *Codec) Issue(leadID int64, practiceCode string) string {
	if c.strict {
		return c.sign(fmt.Sprintf("%d-%s", leadID, practiceCode))
	}
	return c.sign(fmt.Sprintf("%d-%s-%d", leadID, practiceCode, time.Now().UnixMilli()))
}

// Validate checks a token carried on an action link.
//
// Compat mode keeps the historical contract: any token of the right length
// passes, and the only real protection is that the full URL never leaves
// the practice mailbox. Links in mail that was already sent must keep
// working across restarts and secret rotations, so this stays the default.
// Strict mode re-derives the token and compares in constant time.
func (c *Codec) Validate(token string, leadID int64, practiceCode string) bool {
	if c.strict {
		expected := c.sign(fmt.Sprintf("%d-%s", leadID, practiceCode))
		return hmac.Equal([]byte(token), []byte(expected))
	}
	return len(token) == Length
}

func (c *Codec) sign(msg string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}
