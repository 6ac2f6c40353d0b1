package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Kind selects the rule applied to a non-empty field value.
type Kind string

const (
	KindText      Kind = "text"
	KindEmail     Kind = "email"
	KindPhone     Kind = "phone"
	KindDate      Kind = "date"
	KindBirthdate Kind = "birthdate"
	KindYear      Kind = "year"
	KindDecimal   Kind = "decimal"
	KindChoice    Kind = "choice"
	KindRef       Kind = "ref"
	KindMonth     Kind = "month"
	KindPassword  Kind = "password"
	KindMatch     Kind = "match"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"

	PatternLoose  = "loose"
	PatternStrict = "strict"
)

var (
	looseEmail  = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	strictEmail = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	fourDigits  = regexp.MustCompile(`^\d{4}$`)
	allDigits   = regexp.MustCompile(`^\d+$`)
	decimal     = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	hasDigit    = regexp.MustCompile(`\d`)
	hasSpecial  = regexp.MustCompile(`[!@#$%^&*]`)
)

// rule checks a trimmed, non-empty value. Presence is handled before the
// rule runs, so rules only ever see populated fields.
type rule func(f *FieldSpec, v string, values Values, env Env) string

var rules = map[Kind]rule{
	KindText:      checkText,
	KindEmail:     checkEmail,
	KindPhone:     checkPhone,
	KindDate:      checkDate,
	KindBirthdate: checkBirthdate,
	KindYear:      checkYear,
	KindDecimal:   checkDecimal,
	KindChoice:    checkChoice,
	KindRef:       checkRef,
	KindMonth:     checkMonth,
	KindPassword:  checkPassword,
	KindMatch:     checkMatch,
}

func checkText(f *FieldSpec, v string, _ Values, _ Env) string {
	if f.Min > 0 && utf8.RuneCountInString(v) < f.Min {
		return f.message(f.Messages.Min, fmt.Sprintf("Minimum %d characters required", f.Min))
	}
	return ""
}

func checkEmail(f *FieldSpec, v string, _ Values, _ Env) string {
	pattern := looseEmail
	if f.Pattern == PatternStrict {
		pattern = strictEmail
	}
	if !pattern.MatchString(v) {
		return f.message(f.Messages.Format, "Enter a valid email address")
	}
	return ""
}

func checkPhone(f *FieldSpec, v string, _ Values, _ Env) string {
	lo, hi := f.DigitsMin, f.DigitsMax
	if lo <= 0 {
		lo = 10
	}
	if hi < lo {
		hi = lo
	}
	n := len(v)
	if !allDigits.MatchString(v) || n < lo || n > hi {
		if lo == hi {
			return f.message(f.Messages.Format, fmt.Sprintf("Contact number must be %d digits", lo))
		}
		return f.message(f.Messages.Format, fmt.Sprintf("Contact number must be %d-%d digits", lo, hi))
	}
	return ""
}

func checkDate(f *FieldSpec, v string, values Values, _ Env) string {
	day, ok := ParseDate(v)
	if !ok {
		return f.message(f.Messages.Format, "Enter a valid date")
	}
	if f.NotBefore == "" {
		return ""
	}
	start, ok := ParseDate(strings.TrimSpace(values[f.NotBefore]))
	if ok && day.Before(start) {
		return f.message(f.Messages.Order, "To date cannot be before From date")
	}
	return ""
}

func checkBirthdate(f *FieldSpec, v string, _ Values, env Env) string {
	day, ok := ParseDate(v)
	if !ok {
		return f.message(f.Messages.Format, "Enter a valid date")
	}
	now := env.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.After(today) {
		return f.message(f.Messages.Future, f.Label+" cannot be in the future")
	}
	return ""
}

func checkYear(f *FieldSpec, v string, _ Values, _ Env) string {
	if !fourDigits.MatchString(v) {
		return f.message(f.Messages.Format, "Enter valid 4 digit year")
	}
	return ""
}

// checkDecimal accepts plain decimal notation only. ParseFloat alone would
// let NaN, Inf, exponents and hex floats through.
func checkDecimal(f *FieldSpec, v string, _ Values, _ Env) string {
	if !decimal.MatchString(v) {
		return f.message(f.Messages.Format, f.Label+" must be a number")
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return f.message(f.Messages.Format, f.Label+" must be a number")
	}
	outside := (f.RangeMin != nil && n < *f.RangeMin) || (f.RangeMax != nil && n > *f.RangeMax)
	if outside {
		return f.message(f.Messages.Range, f.rangeText())
	}
	return ""
}

func checkChoice(f *FieldSpec, v string, _ Values, env Env) string {
	allowed := f.Choices
	if f.Options != "" {
		set, loaded := env.Options[f.Options]
		if !loaded {
			return ""
		}
		allowed = set
	}
	for _, candidate := range allowed {
		if v == candidate {
			return ""
		}
	}
	return f.message(f.Messages.Choice, "Select a valid option")
}

func checkRef(f *FieldSpec, v string, _ Values, _ Env) string {
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return f.message(f.Messages.Choice, "Select a valid option")
	}
	return ""
}

func checkMonth(f *FieldSpec, v string, _ Values, _ Env) string {
	if _, err := time.Parse(MonthLayout, v); err != nil {
		return f.message(f.Messages.Format, "Enter a valid month (YYYY-MM)")
	}
	return ""
}

func checkPassword(f *FieldSpec, v string, _ Values, _ Env) string {
	min := f.Min
	if min <= 0 {
		min = 6
	}
	switch {
	case utf8.RuneCountInString(v) < min:
		return f.message(f.Messages.Min, fmt.Sprintf("Password must be at least %d characters", min))
	case !hasDigit.MatchString(v):
		return "Password must contain at least one number"
	case !hasSpecial.MatchString(v):
		return "Password must contain at least one special character (!@#$%^&*)"
	}
	return ""
}

func checkMatch(f *FieldSpec, v string, values Values, _ Env) string {
	if v != strings.TrimSpace(values[f.Equals]) {
		return f.message(f.Messages.Format, "Passwords do not match")
	}
	return ""
}

// ParseDate parses a YYYY-MM-DD calendar date (an RFC3339 timestamp is
// accepted and truncated to its date).
func ParseDate(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, v); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
