package models

import (
	"strings"

	dErrors "tally/pkg/domain-errors"
)

// Identity is the caller identity supplied by the authentication layer.
// The engine treats it as an opaque key.
type Identity string

// ParseIdentity trims s and rejects empty identities.
func ParseIdentity(s string) (Identity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identity is required")
	}
	return Identity(s), nil
}

func (i Identity) String() string {
	return string(i)
}
