package auth

import (
	"fmt"
	"regexp"

	"github.com/studyplanner/studyauth/internal/common"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

const minPasswordLen = 6

// ValidateUsername accepts 3-20 characters of letters, digits and
// underscore.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("%w: username must be 3-20 characters (letters, numbers, underscore only)", common.ErrValidation)
	}
	return nil
}

// ValidateEmail accepts the usual local@domain.tld shape with a top-level
// label of at least two letters.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: invalid email address", common.ErrValidation)
	}
	return nil
}

// ValidatePassword enforces the minimum length. There is no composition
// rule beyond it.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, minPasswordLen)
	}
	return nil
}
