package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Result is the outcome every lifecycle and validation function reports:
// a success flag plus a human-readable message. Validation failures travel
// as Results, never as Go errors.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// OK builds a successful Result.
func OK(message string) Result { return Result{OK: true, Message: message} }

// Fail builds a failed Result.
func Fail(message string) Result { return Result{OK: false, Message: message} }

var (
	specialCharPattern = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	// Structural local@domain.tld check, not full RFC 5322.
	emailPattern = regexp.MustCompile(`([-!#-'*+-9=?A-Z^-~]+(\.[-!#-'*+-9=?A-Z^-~]+)*)@[0-9A-Za-z]([0-9A-Za-z-]{0,61}[0-9A-Za-z])?(\.[0-9A-Za-z]([0-9A-Za-z-]{0,61}[0-9A-Za-z])?)+`)
)

const passwordSpecialSet = "!@#$%^&*_"

// IsEmpty reports whether s contains nothing but whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// StringIsNumber reports whether s round-trips exactly through integer or
// float parsing. Numeric fields arrive as text and are gated with this
// before any conversion. Whole floats render without a fractional part, so
// the trailing-".0" spelling ("10.0") is accepted as its own round trip.
func StringIsNumber(s string) bool {
	if i, err := strconv.Atoi(s); err == nil && strconv.Itoa(i) == s {
		return true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		canon := strconv.FormatFloat(f, 'f', -1, 64)
		if canon == s || canon+".0" == s {
			return true
		}
	}
	return false
}

// ContainsDigit reports whether s contains any decimal digit.
func ContainsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

// ContainsSpecialChar reports whether s contains anything outside
// letters, digits and whitespace.
func ContainsSpecialChar(s string) bool {
	return specialCharPattern.MatchString(s)
}

// PasswordIsStrong requires at least one lowercase letter, one uppercase
// letter, one digit, one character from the special set and a length of at
// least 8. All conditions must hold simultaneously.
func PasswordIsStrong(password string) bool {
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecialSet, r):
			special = true
		}
	}
	return lower && upper && digit && special && len(password) >= 8
}

// EmailIsValid checks the local@domain.tld shape of an email address.
func EmailIsValid(email string) bool {
	return emailPattern.MatchString(email)
}

// parseNumber converts a numeric string to an int, truncating any
// fractional part. Callers gate with StringIsNumber first.
func parseNumber(s string) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	f, _ := strconv.ParseFloat(s, 64)
	return int(f)
}
