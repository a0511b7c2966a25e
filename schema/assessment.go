package schema

import "course-server/models"

// NormalizeAssessments coerces component weights to numbers. A null weight is kept as nil.
func (n *Normalizer) NormalizeAssessments(v interface{}) (models.Assessments, error) {
	issues := &issueList{}
	a := assessments(v, "", issues)
	if err := issues.err(); err != nil {
		return nil, err
	}
	return a, nil
}

func assessments(v interface{}, path string, issues *issueList) models.Assessments {
	obj, ok := asObject(v)
	if !ok {
		issues.add(path, expected("object", v))
		return nil
	}

	out := make(models.Assessments, len(obj))
	for _, name := range sortedKeys(obj) {
		raw := obj[name]
		if raw == nil {
			out[name] = nil
			continue
		}
		weight, msg := toNumber(raw)
		if msg != "" {
			issues.add(joinPath(path, name), msg)
			continue
		}
		out[name] = &weight
	}
	return out
}
