package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studyplanner/studyauth/internal/common"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"abc", "alice", "Alice_99", "a_b", strings.Repeat("x", 20)}
	for _, u := range valid {
		assert.NoError(t, ValidateUsername(u), u)
	}

	invalid := []string{"", "ab", strings.Repeat("x", 21), "has space", "dot.ted", "dash-ed", "héllo"}
	for _, u := range invalid {
		assert.ErrorIs(t, ValidateUsername(u), common.ErrValidation, u)
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"alice@x.com", "a.b+c@example.co.uk", "under_score@my-host.io"}
	for _, e := range valid {
		assert.NoError(t, ValidateEmail(e), e)
	}

	invalid := []string{"", "plainaddress", "@no-local.com", "no-at.com", "alice@host", "alice@host.c", "spaces in@x.com"}
	for _, e := range invalid {
		assert.ErrorIs(t, ValidateEmail(e), common.ErrValidation, e)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret"))
	assert.NoError(t, ValidatePassword("a much longer passphrase"))

	assert.ErrorIs(t, ValidatePassword(""), common.ErrValidation)
	assert.ErrorIs(t, ValidatePassword("12345"), common.ErrValidation)
}
