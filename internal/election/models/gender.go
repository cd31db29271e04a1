package models

import (
	"fmt"
	"strings"

	dErrors "tally/pkg/domain-errors"
)

// Gender is the closed demographic category used for candidates, voters and
// turnout statistics.
type Gender uint8

const (
	GenderMale Gender = iota
	GenderFemale
	GenderOther

	genderCount = 3
)

// Genders lists every category in counter order.
var Genders = [genderCount]Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	case GenderOther:
		return "other"
	default:
		return fmt.Sprintf("gender(%d)", uint8(g))
	}
}

// Valid reports whether g is one of the three categories.
func (g Gender) Valid() bool {
	return g < genderCount
}

// ParseGender accepts the category names case-insensitively, plus the
// single-letter forms m, f and o.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	case "other", "o":
		return GenderOther, nil
	default:
		return 0, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown gender %q", s))
	}
}

func (g Gender) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("invalid gender %d", uint8(g)))
	}
	return []byte(g.String()), nil
}

func (g *Gender) UnmarshalText(text []byte) error {
	parsed, err := ParseGender(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
