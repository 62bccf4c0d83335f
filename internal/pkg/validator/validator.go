package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Field + ": " + err.Message
	}
	return strings.Join(msgs, "; ")
}

// ToMap keys messages by field, the last message for a field wins.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

// parseAny returns the first layout that parses value.
func parseAny(value string, layouts ...string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsValidDate parses a "YYYY-MM-DD" calendar date.
func IsValidDate(dateStr string) (time.Time, bool) {
	return parseAny(dateStr, time.DateOnly)
}

// IsValidMonth parses a "YYYY-MM" month.
func IsValidMonth(monthStr string) (time.Time, bool) {
	return parseAny(monthStr, "2006-01")
}

// Employee ID: 3-32 chars, letters, digits, '-' and '_'
var employeeIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)

func IsValidEmployeeID(id string) bool {
	return employeeIDRegex.MatchString(id)
}

// IsInSlice reports whether value is one of options.
func IsInSlice(value string, options []string) bool {
	return slices.Contains(options, value)
}

// IsValidDateTime parses an ISO8601 timestamp with an offset,
// e.g. "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00.123+08:00".
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	return parseAny(dateTimeStr, time.RFC3339, time.RFC3339Nano)
}

// ParseIDList parses a comma separated list of positive integers, e.g. "1,2,3".
func ParseIDList(s string) ([]int64, error) {
	if IsEmpty(s) {
		return nil, fmt.Errorf("at least one id is required")
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id < 1 {
			return nil, fmt.Errorf("%q is not a valid id", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
