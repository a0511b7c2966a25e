package models

// CourseRequest is the validated query of GET /v1/courses. Empty means absent.
type CourseRequest struct {
	ProgramName string `json:"programName,omitempty" validate:"omitempty,max=128"`
	CourseCode  string `json:"courseCode,omitempty" validate:"omitempty,max=128"`
	Normalize   bool   `json:"normalize,omitempty"`
}

// CourseArrayResponse is returned when a whole program is requested.
type CourseArrayResponse struct {
	CourseArrayData interface{} `json:"courseArrayData"`
}
