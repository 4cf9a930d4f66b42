package domain

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Password composition rules. "Special" means any non-word character, i.e.
// anything outside [A-Za-z0-9_].
var (
	reNoWhitespace = regexp.MustCompile(`^\S+$`)
	reDigit        = regexp.MustCompile(`\d`)
	reSpecial      = regexp.MustCompile(`\W`)
	reLowercase    = regexp.MustCompile(`[a-z]`)
	reUppercase    = regexp.MustCompile(`[A-Z]`)
)

// PasswordPolicy validates candidate passwords against a conjunctive rule
// set. Enforced only at credential-creation time; login checks nothing
// beyond non-emptiness.
type PasswordPolicy struct {
	MinLength int
	MaxLength int
}

func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: 6, MaxLength: 64}
}

// Validate returns nil when every rule passes, or a policy violation carrying
// the full requirement description. The message is identical regardless of
// which rule(s) failed, so clients can rely on a stable string and failures
// do not reveal which rules the candidate satisfied.
func (p PasswordPolicy) Validate(candidate string) error {
	// Length bounds count characters, not bytes.
	length := utf8.RuneCountInString(candidate)
	ok := length >= p.MinLength &&
		length <= p.MaxLength &&
		reNoWhitespace.MatchString(candidate) &&
		reDigit.MatchString(candidate) &&
		reSpecial.MatchString(candidate) &&
		reLowercase.MatchString(candidate) &&
		reUppercase.MatchString(candidate)
	if !ok {
		return ErrPolicyViolation(p.Description())
	}
	return nil
}

// Description is the canonical requirement phrasing surfaced on every
// violation.
func (p PasswordPolicy) Description() string {
	return fmt.Sprintf(
		`"password" must be min %d characters, max %d characters, `+
			`have no whitespaces, have at least one digit, `+
			`have at least one special character, `+
			`have at least one small letter and have at least one capital letter`,
		p.MinLength, p.MaxLength,
	)
}
