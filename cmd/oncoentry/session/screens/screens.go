// Package screens contains the data-entry screens: one per record section
// plus the cycle menu. Each screen wraps a huh form around a draft of bound
// field values, so a screen can be rebuilt after a rejected save without
// losing anything the operator typed.
package screens

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"oncoentry/internal/catalog"
	"oncoentry/internal/record"
)

// selectOptions prefixes the real choices with a placeholder sentinel so a
// select starts unanswered, like the paper form.
func selectOptions(placeholder string, values []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(values)+1)
	opts = append(opts, huh.NewOption(placeholder, placeholder))
	for _, v := range values {
		opts = append(opts, huh.NewOption(v, v))
	}
	return opts
}

func yesNoOptions() []huh.Option[string] {
	return selectOptions(catalog.PlaceholderSelect, []string{string(record.Yes), string(record.No)})
}

// normalize turns a placeholder sentinel back into "unanswered".
func normalize(v string) string {
	if catalog.IsPlaceholder(v) {
		return ""
	}
	return v
}

func yesNo(v string) record.YesNo {
	switch record.YesNo(v) {
	case record.Yes, record.No:
		return record.YesNo(v)
	}
	return ""
}

// optStr returns nil for blank input so unanswered conditional fields persist
// as explicit nulls.
func optStr(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func atoiOrZero(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

func atofOrZero(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}

func validateStudyDate(v string) error {
	d, err := time.Parse(record.DateFormat, strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid date, use YYYY-MM-DD")
	}
	if d.Before(record.StudyStart) || d.After(record.StudyEnd) {
		return fmt.Errorf("date must be between %s and %s",
			record.StudyStart.Format(record.DateFormat),
			record.StudyEnd.Format(record.DateFormat))
	}
	return nil
}

// validateOptionalStudyDate accepts blank; conditional requiredness is the
// validator's job, not the widget's.
func validateOptionalStudyDate(v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return validateStudyDate(v)
}

func validatePositiveInt(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a whole number greater than zero")
	}
	return nil
}

func validateBoundedFloat(min, max float64) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if f < min || f > max {
			return fmt.Errorf("value must be between %g and %g", min, max)
		}
		return nil
	}
}

// defaultReviewDate is today's date clamped to the study window.
func defaultReviewDate() string {
	now := time.Now()
	if now.After(record.StudyEnd) {
		now = record.StudyEnd
	}
	if now.Before(record.StudyStart) {
		now = record.StudyStart
	}
	return now.Format(record.DateFormat)
}

func containsValue(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
