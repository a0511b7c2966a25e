package schema

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(WithClock(func() time.Time { return fixedNow }))
}

func lessonDoc() map[string]interface{} {
	return map[string]interface{}{
		"startTimes":   []interface{}{"10:30"},
		"endTimes":     []interface{}{"11:15"},
		"days":         []interface{}{float64(2)},
		"locations":    []interface{}{"Mong Man Wai Bldg 707"},
		"instructors":  []interface{}{"Professor WANG Liwei"},
		"meetingDates": []interface{}{"3/9", "10/9", "17/9", "24/9"},
	}
}

func courseDoc() map[string]interface{} {
	return map[string]interface{}{
		"code":           "AIST1000",
		"title":          "Introduction to Artificial Intelligence",
		"career":         "Undergraduate",
		"units":          "1",
		"grading":        "Graded",
		"components":     "Lecture, Project",
		"campus":         "Main Campus",
		"academic_group": "Faculty of Engineering",
		"requirements":   "For AIST major students only",
		"description":    "Overview of the AIST programme.",
		"terms": map[string]interface{}{
			"2024-25 Term 1": map[string]interface{}{
				"--LEC (8137)":    lessonDoc(),
				"-J01-PRJ (8138)": lessonDoc(),
			},
		},
		"assessments": map[string]interface{}{
			"Attendance":    float64(20),
			"Project":       "50",
			"Participation": "30",
		},
	}
}

// requireIssues asserts err is a *ValidationError and returns its issues.
func requireIssues(t *testing.T, err error) []Issue {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr.Issues
}
