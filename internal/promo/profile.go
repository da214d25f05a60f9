package promo

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// MinimumAge is the youngest a promoter may be at signup
const MinimumAge = 18

// BirthdateLayout is the wire format for birthdates
const BirthdateLayout = "2006-01-02"

var contactNumberRe = regexp.MustCompile(`^\+63 \d{3} \d{3} \d{4}$`)

// CapitalizeName normalizes a name part: first letter upper, rest lower
func CapitalizeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// FullName joins name parts, skipping an empty middle name
func FullName(first, middle, last string) string {
	if middle == "" {
		return strings.TrimSpace(first + " " + last)
	}
	return strings.TrimSpace(first + " " + middle + " " + last)
}

// Age computes completed years between birthdate and now
func Age(birthdate string, now time.Time) (int, error) {
	bd, err := time.Parse(BirthdateLayout, birthdate)
	if err != nil {
		return 0, fmt.Errorf("invalid birthdate %q: %w", birthdate, err)
	}
	age := now.Year() - bd.Year()
	if now.Month() < bd.Month() || (now.Month() == bd.Month() && now.Day() < bd.Day()) {
		age--
	}
	return age, nil
}

// CheckAge rejects promoters under the minimum age
func CheckAge(birthdate string, now time.Time) error {
	age, err := Age(birthdate, now)
	if err != nil {
		return err
	}
	if age < MinimumAge {
		return fmt.Errorf("you must be at least %d years old", MinimumAge)
	}
	return nil
}

// ValidContactNumber reports whether s matches the +63 XXX XXX XXXX format
func ValidContactNumber(s string) bool {
	return contactNumberRe.MatchString(s)
}
