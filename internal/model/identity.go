package model

import "fmt"

type IdentityKind string

const (
	IdentityUser IdentityKind = "user"
	IdentityTeam IdentityKind = "team"
)

// Identity is the scoring unit for a contest: an individual account in an
// individual contest, or a team in a team contest.
type Identity struct {
	Kind IdentityKind `json:"kind" bson:"kind"`
	ID   string       `json:"id" bson:"id"`
}

// IsZero reports whether no identity could be resolved
func (i Identity) IsZero() bool {
	return i.ID == ""
}

// String returns a stable key form like "team:42", used for cache keys and
// flag derivation.
func (i Identity) String() string {
	return fmt.Sprintf("%s:%s", i.Kind, i.ID)
}
