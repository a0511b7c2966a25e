package schema

import (
	"net/url"
	"strconv"

	"course-server/models"
)

const (
	PROGRAM_NAME_QUERY_ARG = "programName"
	COURSE_CODE_QUERY_ARG  = "courseCode"
	NORMALIZE_QUERY_ARG    = "normalize"
)

// ParseCourseRequest validates the query parameters of a course lookup. Both
// parameters are optional; each may appear at most once.
func (n *Normalizer) ParseCourseRequest(vals url.Values) (models.CourseRequest, error) {
	issues := &issueList{}
	req := models.CourseRequest{
		ProgramName: singleParam(vals, PROGRAM_NAME_QUERY_ARG, issues),
		CourseCode:  singleParam(vals, COURSE_CODE_QUERY_ARG, issues),
	}

	if v := singleParam(vals, NORMALIZE_QUERY_ARG, issues); v != "" {
		normalize, err := strconv.ParseBool(v)
		if err != nil {
			issues.add(NORMALIZE_QUERY_ARG, "Expected boolean, received string")
		}
		req.Normalize = normalize
	}

	n.validateStruct(req, "", issues)
	if err := issues.err(); err != nil {
		return models.CourseRequest{}, err
	}
	return req, nil
}

func singleParam(vals url.Values, name string, issues *issueList) string {
	values := vals[name]
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	}
	issues.add(name, "Expected string, received array")
	return ""
}
