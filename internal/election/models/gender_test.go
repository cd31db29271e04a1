package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tally/pkg/domain-errors"
)

func TestParseGender(t *testing.T) {
	for input, want := range map[string]Gender{
		"male": GenderMale, "M": GenderMale,
		"Female": GenderFemale, "f": GenderFemale,
		" other ": GenderOther, "o": GenderOther,
	} {
		got, err := ParseGender(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseGender("unknown")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestGenderText(t *testing.T) {
	text, err := GenderFemale.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "female", string(text))

	var g Gender
	require.NoError(t, g.UnmarshalText([]byte("other")))
	assert.Equal(t, GenderOther, g)

	_, err = Gender(7).MarshalText()
	assert.Error(t, err)
}

func TestNewCandidate(t *testing.T) {
	_, err := NewCandidate(0, "  ", GenderMale, "P1")
	assert.ErrorIs(t, err, ErrEmptyCandidateName)

	_, err = NewCandidate(0, "X", GenderMale, "")
	assert.ErrorIs(t, err, ErrEmptyPartyName)

	c, err := NewCandidate(3, " X ", GenderMale, " P1 ")
	require.NoError(t, err)
	assert.Equal(t, Candidate{ID: 3, Name: "X", Party: "P1", Gender: GenderMale}, c)
}

func TestReason(t *testing.T) {
	assert.Equal(t, "already_voted", Reason(AlreadyVoted("a")))
	assert.Equal(t, "not_administrator", Reason(NotAdministrator("x")))
	assert.Equal(t, "other", Reason(dErrors.New(dErrors.CodeInternal, "boom")))
	assert.True(t, dErrors.HasCode(NotAdministrator("x"), dErrors.CodeForbidden))
	assert.True(t, dErrors.HasCode(InvalidCandidate(4), dErrors.CodeNotFound))
}
