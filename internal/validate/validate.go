// Package validate holds the input rules shared by every service.
//
// The functions are pure: no state, no I/O, no errors. Services decide which
// error kind a failed check turns into; this package only answers yes or no.
package validate

import "regexp"

// Poll and username bounds.
const (
	MinOptions        = 2
	MaxOptions        = 6
	MinUsernameLength = 4
	MaxUsernameLength = 12
)

var (
	labelPattern    = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// ValidLabel reports whether s can be used as a poll title or option label:
// non-empty, ASCII letters, digits and spaces only.
func ValidLabel(s string) bool {
	return labelPattern.MatchString(s)
}

// ValidUsername reports whether s is 4-12 ASCII letters or digits.
func ValidUsername(s string) bool {
	if len(s) < MinUsernameLength || len(s) > MaxUsernameLength {
		return false
	}
	return usernamePattern.MatchString(s)
}

// ValidOptionCount reports whether a poll may have n options.
func ValidOptionCount(n int) bool {
	return n >= MinOptions && n <= MaxOptions
}

func ValidPositiveInt(x int64) bool {
	return x > 0
}

func ValidNonNegativeInt(x int64) bool {
	return x >= 0
}
