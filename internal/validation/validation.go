package validation

import (
	"regexp"
	"strings"
)

var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// Validator collects field constraint violations in check order
type Validator struct {
	violations []string
}

func New() *Validator {
	return &Validator{}
}

// Check records "<field> <msg>" when cond does not hold
func (v *Validator) Check(cond bool, field, msg string) {
	if cond {
		return
	}
	v.violations = append(v.violations, field+" "+msg)
}

// CheckEmail records violations for a malformed or missing email
func (v *Validator) CheckEmail(email string) {
	v.Check(email != "", "email", "is required")
	if email != "" {
		v.Check(emailRegexp.MatchString(email), "email", "must be a valid email address")
	}
}

// Valid reports whether no violation was recorded
func (v *Validator) Valid() bool {
	return len(v.violations) == 0
}

// Message joins every violation into a single human-readable string
func (v *Validator) Message() string {
	return strings.Join(v.violations, ", ")
}
