package schema

import (
	"math"
	"strings"
	"time"
)

const invalidDateMessage = "Invalid date format"

// NormalizeDate turns a "D/M" meeting date into a date in the clock's current
// year. Dates already normalized (time.Time or RFC 3339 text) pass through.
func (n *Normalizer) NormalizeDate(v interface{}) (time.Time, error) {
	issues := &issueList{}
	d, _ := n.date(v, "", issues)
	return d, issues.err()
}

func (n *Normalizer) date(v interface{}, path string, issues *issueList) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
		d, ok := n.dayMonth(t)
		if !ok {
			issues.add(path, invalidDateMessage)
		}
		return d, ok
	}
	issues.add(path, expected("date", v))
	return time.Time{}, false
}

// dayMonth parses "D/M". Parts after the month are ignored. The date must
// exist in the current year, so "31/2" is rejected rather than rolled over.
func (n *Normalizer) dayMonth(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) < 2 {
		return time.Time{}, false
	}

	day, month := parseNumber(parts[0]), parseNumber(parts[1])
	if math.IsNaN(day) || math.IsNaN(month) || day != math.Trunc(day) || month != math.Trunc(month) {
		return time.Time{}, false
	}

	now := n.now()
	d := time.Date(now.Year(), time.Month(int(month)), int(day), 0, 0, 0, 0, now.Location())
	if d.Day() != int(day) || int(d.Month()) != int(month) {
		return time.Time{}, false
	}
	return d, true
}
