package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"flagarena/internal/model"
)

// derivedFlagLen is the hex length of the keyed-hash body of derived flags
const derivedFlagLen = 32

// Verifier decides whether a submitted flag is correct. It is side-effect
// free and safe to call any number of times for the same attempt.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier. The secret keys per-identity flag
// derivation; leaking it lets solvers forge other identities' flags.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify compares the submitted text against the challenge's canonical flag.
// In derived mode every identity has its own flag; an unresolved identity
// never verifies, so anonymous callers cannot hit a guessable default.
func (v *Verifier) Verify(challenge *model.Challenge, submitted string, identity model.Identity) bool {
	var canonical string
	switch challenge.FlagMode {
	case model.FlagDerived:
		if identity.IsZero() {
			return false
		}
		canonical = v.DeriveFlag(challenge, identity)
	default:
		canonical = wrapFlag(challenge.FlagPrefix, challenge.Flag)
	}

	got := normalize(submitted, challenge.CaseInsensitive)
	want := normalize(canonical, challenge.CaseInsensitive)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// DeriveFlag computes the canonical flag for one identity in derived mode.
// Deterministic for a fixed secret: the same identity always gets the same
// flag, and different identities get different ones.
func (v *Verifier) DeriveFlag(challenge *model.Challenge, identity model.Identity) string {
	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%s|%s|%s|%s", challenge.ContestID, challenge.ID, identity.String(), challenge.Flag)
	body := hex.EncodeToString(mac.Sum(nil))[:derivedFlagLen]
	return wrapFlag(challenge.FlagPrefix, body)
}

func wrapFlag(prefix, body string) string {
	return prefix + "{" + body + "}"
}

func normalize(s string, caseInsensitive bool) string {
	s = strings.TrimSpace(s)
	if caseInsensitive {
		s = strings.ToLower(s)
	}
	return s
}
