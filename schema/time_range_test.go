package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTimeRange_CoercesAndKeepsValues(t *testing.T) {
	n := newTestNormalizer()

	tr, err := n.NormalizeTimeRange(map[string]interface{}{
		"start": []interface{}{"10", float64(0), " 9 "},
		"end":   []interface{}{float64(23), "11"},
	})

	require.NoError(t, err)
	assert.Equal(t, []float64{10, 0, 9}, tr.Start)
	assert.Equal(t, []float64{23, 11}, tr.End)
}

func TestNormalizeTimeRange_OutOfRange(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name    string
		input   map[string]interface{}
		path    string
		message string
	}{
		{
			name:    "start above 23",
			input:   map[string]interface{}{"start": []interface{}{"24"}, "end": []interface{}{"10"}},
			path:    "start",
			message: "Start times must be between 0 and 23",
		},
		{
			name:    "end below 0",
			input:   map[string]interface{}{"start": []interface{}{float64(1)}, "end": []interface{}{float64(5), float64(-1)}},
			path:    "end",
			message: "End times must be between 0 and 23",
		},
		{
			name:    "fraction above 23",
			input:   map[string]interface{}{"start": []interface{}{"23.5"}, "end": []interface{}{}},
			path:    "start",
			message: "Start times must be between 0 and 23",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.NormalizeTimeRange(tt.input)
			issues := requireIssues(t, err)
			require.Len(t, issues, 1)
			assert.Equal(t, tt.path, issues[0].Path)
			assert.Equal(t, tt.message, issues[0].Message)
		})
	}
}

func TestNormalizeTimeRange_NonNumeric(t *testing.T) {
	n := newTestNormalizer()

	_, err := n.NormalizeTimeRange(map[string]interface{}{
		"start": []interface{}{"ten"},
		"end":   []interface{}{true},
	})

	issues := requireIssues(t, err)
	assert.Equal(t, []Issue{
		{Path: "start.0", Message: "Expected number, received nan"},
		{Path: "end.0", Message: "Expected number, received boolean"},
	}, issues)
}

func TestNormalizeTimeRange_Shape(t *testing.T) {
	n := newTestNormalizer()

	_, err := n.NormalizeTimeRange(map[string]interface{}{"start": "10"})
	issues := requireIssues(t, err)
	assert.Equal(t, []Issue{
		{Path: "start", Message: "Expected array, received string"},
		{Path: "end", Message: "Required"},
	}, issues)

	_, err = n.NormalizeTimeRange([]interface{}{})
	issues = requireIssues(t, err)
	assert.Equal(t, "Expected object, received array", issues[0].Message)
}
