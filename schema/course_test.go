package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"course-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCourse_Valid(t *testing.T) {
	n := newTestNormalizer()

	c, err := n.NormalizeCourse(courseDoc())

	require.NoError(t, err)
	assert.Equal(t, "AIST1000", c.Code)
	assert.Equal(t, "Faculty of Engineering", c.AcademicGroup)
	assert.Equal(t, "For AIST major students only", c.Requirements)
	require.NotNil(t, c.Description)
	assert.Equal(t, "Overview of the AIST programme.", *c.Description)
	assert.Nil(t, c.Syllabus)
	require.Contains(t, c.Terms, "2024-25 Term 1")
	assert.Len(t, c.Terms["2024-25 Term 1"], 2)
	assert.Equal(t, 50.0, *c.Assessments["Project"])
}

func TestNormalizeCourse_RequirementsSentinel(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		input string
		want  string
	}{
		{"", models.REQUIREMENT_NOT_FOUND},
		{"   ", models.REQUIREMENT_NOT_FOUND},
		{"\t\n", models.REQUIREMENT_NOT_FOUND},
		{"Prerequisite: CSCI2100", "Prerequisite: CSCI2100"},
		{" padded ", " padded "},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc := courseDoc()
			doc["requirements"] = tt.input
			c, err := n.NormalizeCourse(doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Requirements)
		})
	}
}

func TestNormalizeCourse_RequiredFields(t *testing.T) {
	n := newTestNormalizer()

	doc := courseDoc()
	delete(doc, "code")
	doc["title"] = ""
	doc["campus"] = float64(1)
	delete(doc, "requirements")

	_, err := n.NormalizeCourse(doc)

	assert.Equal(t, []Issue{
		{Path: "code", Message: "Required"},
		{Path: "campus", Message: "Expected string, received number"},
		{Path: "requirements", Message: "Required"},
		{Path: "title", Message: "Course title cannot be empty"},
	}, requireIssues(t, err))
}

func TestNormalizeCourse_EmptyStringMessages(t *testing.T) {
	n := newTestNormalizer()
	expected := map[string]string{
		"code":           "Course code cannot be empty",
		"title":          "Course title cannot be empty",
		"career":         "Career cannot be empty",
		"units":          "Units cannot be empty",
		"grading":        "Grading cannot be empty",
		"components":     "Components cannot be empty",
		"campus":         "Campus cannot be empty",
		"academic_group": "Academic group cannot be empty",
	}

	for field, message := range expected {
		t.Run(field, func(t *testing.T) {
			doc := courseDoc()
			doc[field] = ""
			_, err := n.NormalizeCourse(doc)
			assert.Equal(t, []Issue{{Path: field, Message: message}}, requireIssues(t, err))
		})
	}
}

func TestNormalizeCourse_OptionalStrings(t *testing.T) {
	n := newTestNormalizer()
	doc := courseDoc()
	doc["description"] = nil
	doc["outcome"] = "Students can build agents."
	doc["syllabus"] = []interface{}{"week 1"}

	_, err := n.NormalizeCourse(doc)
	assert.Equal(t, []Issue{{Path: "syllabus", Message: "Expected string, received array"}}, requireIssues(t, err))

	delete(doc, "syllabus")
	c, err := n.NormalizeCourse(doc)
	require.NoError(t, err)
	assert.Nil(t, c.Description)
	require.NotNil(t, c.Outcome)
	assert.Equal(t, "Students can build agents.", *c.Outcome)
}

func TestNormalizeCourse_NestedIssues(t *testing.T) {
	n := newTestNormalizer()
	doc := courseDoc()
	lesson := doc["terms"].(map[string]interface{})["2024-25 Term 1"].(map[string]interface{})["--LEC (8137)"].(map[string]interface{})
	lesson["locations"] = []interface{}{}
	doc["assessments"].(map[string]interface{})["Exam"] = "n/a"

	_, err := n.NormalizeCourse(doc)

	assert.Equal(t, []Issue{
		{Path: "terms.2024-25 Term 1.--LEC (8137).locations", Message: "Locations cannot be empty"},
		{Path: "assessments.Exam", Message: "Expected number, received nan"},
	}, requireIssues(t, err))
	assert.True(t, strings.Contains(err.Error(), "assessments.Exam: Expected number, received nan"))
}

func TestNormalizeCourse_Idempotent(t *testing.T) {
	n := newTestNormalizer()

	first, err := n.NormalizeCourse(courseDoc())
	require.NoError(t, err)

	data, err := json.Marshal(first)
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	second, err := n.NormalizeCourse(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	again, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestNormalizeCourses_Batch(t *testing.T) {
	n := newTestNormalizer()

	second := courseDoc()
	second["code"] = "AIST1110"
	courses, err := n.NormalizeCourses([]map[string]interface{}{courseDoc(), second})
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "AIST1000", courses[0].Code)
	assert.Equal(t, "AIST1110", courses[1].Code)

	broken := courseDoc()
	broken["code"] = ""
	_, err = n.NormalizeCourses([]map[string]interface{}{courseDoc(), broken})
	assert.Equal(t, []Issue{{Path: "1.code", Message: "Course code cannot be empty"}}, requireIssues(t, err))

	empty, err := n.NormalizeCourses(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNormalizeCourse_NotAnObject(t *testing.T) {
	n := newTestNormalizer()

	_, err := n.NormalizeCourse("CSCI3100")

	assert.Equal(t, []Issue{{Path: "", Message: "Expected object, received string"}}, requireIssues(t, err))
}
