package schema

import (
	"strings"

	"course-server/models"
)

// NormalizeCourse validates a raw course document and returns its normalized form.
func (n *Normalizer) NormalizeCourse(v interface{}) (models.Course, error) {
	issues := &issueList{}
	c := n.course(v, "", issues)
	if err := issues.err(); err != nil {
		return models.Course{}, err
	}
	return c, nil
}

// NormalizeCourses normalizes a batch. Issue paths are prefixed with the index
// of the failing document and no partial result is returned.
func (n *Normalizer) NormalizeCourses(docs []map[string]interface{}) ([]models.Course, error) {
	issues := &issueList{}
	courses := make([]models.Course, 0, len(docs))
	for i, doc := range docs {
		courses = append(courses, n.course(doc, joinPath("", i), issues))
	}
	if err := issues.err(); err != nil {
		return nil, err
	}
	return courses, nil
}

func (n *Normalizer) course(v interface{}, path string, issues *issueList) models.Course {
	obj, ok := asObject(v)
	if !ok {
		issues.add(path, expected("object", v))
		return models.Course{}
	}

	c := models.Course{
		Code:                requiredString(obj, "code", path, issues),
		Title:               requiredString(obj, "title", path, issues),
		Career:              requiredString(obj, "career", path, issues),
		Units:               requiredString(obj, "units", path, issues),
		Grading:             requiredString(obj, "grading", path, issues),
		Components:          requiredString(obj, "components", path, issues),
		Campus:              requiredString(obj, "campus", path, issues),
		AcademicGroup:       requiredString(obj, "academic_group", path, issues),
		Requirements:        requiredString(obj, "requirements", path, issues),
		Description:         optionalString(obj, "description", path, issues),
		Outcome:             optionalString(obj, "outcome", path, issues),
		Syllabus:            optionalString(obj, "syllabus", path, issues),
		RequiredReadings:    optionalString(obj, "required_readings", path, issues),
		RecommendedReadings: optionalString(obj, "recommended_readings", path, issues),
	}

	if strings.TrimSpace(c.Requirements) == "" && !issues.has(joinPath(path, "requirements")) {
		c.Requirements = models.REQUIREMENT_NOT_FOUND
	}

	if raw, present := obj["terms"]; present && raw != nil {
		c.Terms = n.terms(raw, joinPath(path, "terms"), issues)
	}
	if raw, present := obj["assessments"]; present && raw != nil {
		c.Assessments = assessments(raw, joinPath(path, "assessments"), issues)
	}

	n.validateStruct(c, path, issues)
	return c
}

func requiredString(obj map[string]interface{}, key, path string, issues *issueList) string {
	raw, present := obj[key]
	if !present {
		issues.add(joinPath(path, key), requiredMessage)
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		issues.add(joinPath(path, key), expected("string", raw))
		return ""
	}
	return s
}

// optionalString treats a missing key and null alike.
func optionalString(obj map[string]interface{}, key, path string, issues *issueList) *string {
	raw, present := obj[key]
	if !present || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		issues.add(joinPath(path, key), expected("string", raw))
		return nil
	}
	return &s
}
