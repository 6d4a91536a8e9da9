package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Validation rule patterns and bounds
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Mobile number pattern - exactly 10 digits
	MobilePattern = `^\d{10}$`

	// Enrollment number length - exactly 10 characters
	EnrollmentNoLength = 10

	// Password min length
	PasswordMinLength = 6

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100

	// PassingYearMin is the earliest accepted 4-digit passing year
	PassingYearMin = 2000
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email  *regexp.Regexp
	Mobile *regexp.Regexp
}{
	Email:  regexp.MustCompile(EmailPattern),
	Mobile: regexp.MustCompile(MobilePattern),
}

// ValidEnrollmentNo reports whether the enrollment number has the required length.
func ValidEnrollmentNo(no string) bool {
	return len(no) == EnrollmentNoLength
}

// ValidName reports whether a trimmed name falls inside the accepted length bounds.
func ValidName(name string) bool {
	l := len(strings.TrimSpace(name))
	return l >= NameMinLength && l <= NameMaxLength
}

// ValidMobile reports whether the value is a 10-digit mobile number.
func ValidMobile(mobile string) bool {
	return CompiledPatterns.Mobile.MatchString(mobile)
}

// ValidPercentage reports whether the value is within 0..100 inclusive.
func ValidPercentage(p float64) bool {
	return p >= 0 && p <= 100
}

// ValidCGPA reports whether the value is within 0..10 inclusive.
func ValidCGPA(c float64) bool {
	return c >= 0 && c <= 10
}

// ValidPassingYear reports whether the value is a 4-digit year between
// PassingYearMin and five years past the given reference year.
func ValidPassingYear(year int, now time.Time) bool {
	return year >= PassingYearMin && year <= now.Year()+5
}

// ValidYearRange reports whether end is not before start.
func ValidYearRange(start, end int) bool {
	return end >= start
}

// DOBWindow describes the inclusive birth-year window accepted for students.
type DOBWindow struct {
	MinYear int
	MaxYear int
}

// Contains reports whether the date of birth falls inside the window.
func (w DOBWindow) Contains(dob time.Time) bool {
	return dob.Year() >= w.MinYear && dob.Year() <= w.MaxYear
}

// String renders the window for validation messages.
func (w DOBWindow) String() string {
	return fmt.Sprintf("%d-%d", w.MinYear, w.MaxYear)
}
