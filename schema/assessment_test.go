package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAssessments_CoercesStrings(t *testing.T) {
	n := newTestNormalizer()

	a, err := n.NormalizeAssessments(map[string]interface{}{
		"Attendance":    "20",
		"Project":       float64(50),
		"Participation": " 30 ",
		"Bonus":         nil,
	})

	require.NoError(t, err)
	require.Len(t, a, 4)
	assert.Equal(t, 20.0, *a["Attendance"])
	assert.Equal(t, 50.0, *a["Project"])
	assert.Equal(t, 30.0, *a["Participation"])
	assert.Nil(t, a["Bonus"])
}

func TestNormalizeAssessments_NonNumeric(t *testing.T) {
	n := newTestNormalizer()

	_, err := n.NormalizeAssessments(map[string]interface{}{
		"Exam":    "fifty",
		"Project": true,
		"Quiz":    "10",
	})

	assert.Equal(t, []Issue{
		{Path: "Exam", Message: "Expected number, received nan"},
		{Path: "Project", Message: "Expected number, received boolean"},
	}, requireIssues(t, err))
}

func TestNormalizeAssessments_NotAnObject(t *testing.T) {
	n := newTestNormalizer()

	_, err := n.NormalizeAssessments([]interface{}{"20"})

	assert.Equal(t, []Issue{{Path: "", Message: "Expected object, received array"}}, requireIssues(t, err))
}
