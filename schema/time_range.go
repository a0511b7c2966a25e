package schema

import (
	"math"

	"course-server/models"
)

const (
	MIN_HOUR = 0
	MAX_HOUR = 23
)

const (
	startRangeMessage = "Start times must be between 0 and 23"
	endRangeMessage   = "End times must be between 0 and 23"
)

// NormalizeTimeRange coerces {start, end} hour lists. One value outside
// 0..23 fails its whole list.
func (n *Normalizer) NormalizeTimeRange(v interface{}) (models.TimeRange, error) {
	issues := &issueList{}
	obj, ok := asObject(v)
	if !ok {
		issues.add("", expected("object", v))
		return models.TimeRange{}, issues.err()
	}

	tr := models.TimeRange{
		Start: hours(obj, "start", startRangeMessage, issues),
		End:   hours(obj, "end", endRangeMessage, issues),
	}
	if err := issues.err(); err != nil {
		return models.TimeRange{}, err
	}
	return tr, nil
}

func hours(obj map[string]interface{}, key, rangeMessage string, issues *issueList) []float64 {
	raw, present := obj[key]
	if !present {
		issues.add(key, requiredMessage)
		return nil
	}
	elems, ok := asArray(raw)
	if !ok {
		issues.add(key, expected("array", raw))
		return nil
	}

	values := make([]float64, len(elems))
	coerced := true
	for i, e := range elems {
		f, msg := toNumber(e)
		if msg != "" {
			issues.add(joinPath(key, i), msg)
			coerced = false
			continue
		}
		values[i] = boundHour(f)
	}
	if !coerced {
		return nil
	}

	for _, h := range values {
		if math.IsNaN(h) {
			issues.add(key, rangeMessage)
			return nil
		}
	}
	return values
}

// boundHour marks values outside MIN_HOUR..MAX_HOUR as NaN.
func boundHour(h float64) float64 {
	if h >= MIN_HOUR && h <= MAX_HOUR {
		return h
	}
	return math.NaN()
}
