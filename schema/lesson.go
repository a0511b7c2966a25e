package schema

import (
	"math"
	"sort"
	"time"

	"course-server/models"
)

// NormalizeLesson validates one section's meeting pattern.
func (n *Normalizer) NormalizeLesson(v interface{}) (models.Lesson, error) {
	issues := &issueList{}
	l := n.lesson(v, "", issues)
	if err := issues.err(); err != nil {
		return models.Lesson{}, err
	}
	return l, nil
}

// NormalizeTerms validates term name -> section id -> lesson. Keys are not restricted.
func (n *Normalizer) NormalizeTerms(v interface{}) (models.Terms, error) {
	issues := &issueList{}
	terms := n.terms(v, "", issues)
	if err := issues.err(); err != nil {
		return nil, err
	}
	return terms, nil
}

func (n *Normalizer) lesson(v interface{}, path string, issues *issueList) models.Lesson {
	obj, ok := asObject(v)
	if !ok {
		issues.add(path, expected("object", v))
		return models.Lesson{}
	}

	l := models.Lesson{
		StartTimes:  stringArray(obj, "startTimes", path, issues),
		EndTimes:    stringArray(obj, "endTimes", path, issues),
		Locations:   stringArray(obj, "locations", path, issues),
		Instructors: stringArray(obj, "instructors", path, issues),
	}

	// older documents store the weekdays under "days"
	rawDay, present := obj["day"]
	if !present {
		rawDay, present = obj["days"]
	}
	if present && rawDay != nil {
		l.Day = dayValues(rawDay, joinPath(path, "day"), issues)
	}

	l.MeetingDates = n.meetingDates(obj, path, issues)

	n.validateStruct(l, path, issues)
	return l
}

func (n *Normalizer) meetingDates(obj map[string]interface{}, path string, issues *issueList) []time.Time {
	fieldPath := joinPath(path, "meetingDates")
	raw, present := obj["meetingDates"]
	if !present {
		issues.add(fieldPath, requiredMessage)
		return nil
	}
	elems, ok := asArray(raw)
	if !ok {
		issues.add(fieldPath, expected("array", raw))
		return nil
	}

	dates := make([]time.Time, 0, len(elems))
	for i, e := range elems {
		if d, ok := n.date(e, joinPath(fieldPath, i), issues); ok {
			dates = append(dates, d)
		}
	}
	return dates
}

func (n *Normalizer) terms(v interface{}, path string, issues *issueList) models.Terms {
	obj, ok := asObject(v)
	if !ok {
		issues.add(path, expected("object", v))
		return nil
	}

	terms := make(models.Terms, len(obj))
	for _, termName := range sortedKeys(obj) {
		termPath := joinPath(path, termName)
		sectionsObj, ok := asObject(obj[termName])
		if !ok {
			issues.add(termPath, expected("object", obj[termName]))
			continue
		}
		sections := make(models.Sections, len(sectionsObj))
		for _, sectionID := range sortedKeys(sectionsObj) {
			sections[sectionID] = n.lesson(sectionsObj[sectionID], joinPath(termPath, sectionID), issues)
		}
		terms[termName] = sections
	}
	return terms
}

// stringArray reads a required array of strings.
func stringArray(obj map[string]interface{}, key, path string, issues *issueList) []string {
	fieldPath := joinPath(path, key)
	raw, present := obj[key]
	if !present {
		issues.add(fieldPath, requiredMessage)
		return nil
	}
	elems, ok := asArray(raw)
	if !ok {
		issues.add(fieldPath, expected("array", raw))
		return nil
	}

	out := make([]string, 0, len(elems))
	for i, e := range elems {
		s, ok := e.(string)
		if !ok {
			issues.add(joinPath(fieldPath, i), expected("string", e))
			continue
		}
		out = append(out, s)
	}
	return out
}

func dayValues(raw interface{}, path string, issues *issueList) []models.DayValue {
	elems, ok := asArray(raw)
	if !ok {
		issues.add(path, expected("array", raw))
		return nil
	}

	out := make([]models.DayValue, 0, len(elems))
	for i, e := range elems {
		if s, ok := e.(string); ok {
			out = append(out, models.DayText(s))
			continue
		}
		f, msg := toNumber(e)
		if msg != "" {
			issues.add(joinPath(path, i), "Expected string or number, received "+typeName(e))
			continue
		}
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			issues.add(joinPath(path, i), "Expected integer, received float")
			continue
		}
		out = append(out, models.DayNumber(int(f)))
	}
	return out
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
