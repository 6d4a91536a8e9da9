package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidEnrollmentNo(t *testing.T) {
	assert.True(t, ValidEnrollmentNo("2103031050"))
	assert.False(t, ValidEnrollmentNo("210303105"))
	assert.False(t, ValidEnrollmentNo("21030310501"))
	assert.False(t, ValidEnrollmentNo(""))
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Aarav"))
	assert.True(t, ValidName("  Jo  ")) // trimmed before measuring
	assert.False(t, ValidName("A"))
	assert.False(t, ValidName(""))
	assert.False(t, ValidName(strings.Repeat("a", 101)))
}

func TestValidMobile(t *testing.T) {
	assert.True(t, ValidMobile("9876543210"))
	assert.False(t, ValidMobile("98765.3210"))
	assert.False(t, ValidMobile("987654321"))
	assert.False(t, ValidMobile("+919876543210"))
}

func TestValidPercentage(t *testing.T) {
	assert.True(t, ValidPercentage(0))
	assert.True(t, ValidPercentage(72.5))
	assert.True(t, ValidPercentage(100))
	assert.False(t, ValidPercentage(-0.1))
	assert.False(t, ValidPercentage(100.1))
}

func TestValidCGPA(t *testing.T) {
	assert.True(t, ValidCGPA(0))
	assert.True(t, ValidCGPA(8.4))
	assert.True(t, ValidCGPA(10))
	assert.False(t, ValidCGPA(10.01))
	assert.False(t, ValidCGPA(-1))
}

func TestValidPassingYear(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, ValidPassingYear(2000, now))
	assert.True(t, ValidPassingYear(2026, now))
	assert.True(t, ValidPassingYear(2031, now))
	assert.False(t, ValidPassingYear(1999, now))
	assert.False(t, ValidPassingYear(2032, now))
}

func TestValidYearRange(t *testing.T) {
	assert.True(t, ValidYearRange(2021, 2025))
	assert.True(t, ValidYearRange(2025, 2025))
	assert.False(t, ValidYearRange(2025, 2024))
}

func TestDOBWindow(t *testing.T) {
	w := DOBWindow{MinYear: 2004, MaxYear: 2006}

	assert.True(t, w.Contains(time.Date(2004, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2006, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2003, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2007, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2004-2006", w.String())
}
