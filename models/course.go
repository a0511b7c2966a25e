package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// REQUIREMENT_NOT_FOUND replaces empty requirements after normalization.
const REQUIREMENT_NOT_FOUND = "requirement_not_found"

// Course is the normalized form of a stored course document.
type Course struct {
	Code                string      `json:"code" validate:"required"`
	Title               string      `json:"title" validate:"required"`
	Career              string      `json:"career" validate:"required"`
	Units               string      `json:"units" validate:"required"`
	Grading             string      `json:"grading" validate:"required"`
	Components          string      `json:"components" validate:"required"`
	Campus              string      `json:"campus" validate:"required"`
	AcademicGroup       string      `json:"academic_group" validate:"required"`
	Requirements        string      `json:"requirements"`
	Description         *string     `json:"description,omitempty"`
	Outcome             *string     `json:"outcome,omitempty"`
	Syllabus            *string     `json:"syllabus,omitempty"`
	RequiredReadings    *string     `json:"required_readings,omitempty"`
	RecommendedReadings *string     `json:"recommended_readings,omitempty"`
	Terms               Terms       `json:"terms,omitempty"`
	Assessments         Assessments `json:"assessments,omitempty"`
}

// Terms maps a term name ("2024-25 Term 1") to its sections.
type Terms map[string]Sections

// Sections maps a section identifier ("--LEC (8137)") to its lesson.
type Sections map[string]Lesson

// Assessments maps an assessment component to its weight. A nil weight was stored without a value.
type Assessments map[string]*float64

type Lesson struct {
	StartTimes   []string    `json:"startTimes"`
	EndTimes     []string    `json:"endTimes"`
	Day          []DayValue  `json:"day,omitempty"`
	Locations    []string    `json:"locations" validate:"min=1"`
	Instructors  []string    `json:"instructors" validate:"min=1"`
	MeetingDates []time.Time `json:"meetingDates"`
}

// TimeRange holds hour-of-day bounds, each within 0..23.
type TimeRange struct {
	Start []float64 `json:"start"`
	End   []float64 `json:"end"`
}

// DayValue is a weekday marker stored either as text ("Tue") or as a number (2).
type DayValue struct {
	Text     string
	Number   int
	IsNumber bool
}

func DayText(s string) DayValue {
	return DayValue{Text: s}
}

func DayNumber(n int) DayValue {
	return DayValue{Number: n, IsNumber: true}
}

func (d DayValue) String() string {
	if d.IsNumber {
		return strconv.Itoa(d.Number)
	}
	return d.Text
}

func (d DayValue) MarshalJSON() ([]byte, error) {
	if d.IsNumber {
		return json.Marshal(d.Number)
	}
	return json.Marshal(d.Text)
}

func (d *DayValue) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*d = DayNumber(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("day must be a string or an integer: %s", data)
	}
	*d = DayText(s)
	return nil
}
