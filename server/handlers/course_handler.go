package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"course-server/db"
	"course-server/models"
	"course-server/schema"
	services "course-server/service"
	"course-server/util"

	"github.com/gorilla/mux"
)

const (
	PROGRAM_NAME_PATH_VAR = "programName"
	COURSE_CODE_PATH_VAR  = "courseCode"
	MAX_BODY_BYTES        = 1 << 20
)

// search value prefixes, longest first so ">=" wins over ">"
var searchOperators = []string{db.OpGreaterEqual, db.OpLessEqual, db.OpNotEqual, db.OpGreater, db.OpLess}

const (
	IN_PREFIX       = "in:"
	NOT_IN_PREFIX   = "not-in:"
	CONTAINS_PREFIX = "contains:"
)

type CourseHandler struct {
	courseService  *services.CourseService
	normalizer     *schema.Normalizer
	requestTimeout time.Duration
}

func NewCourseHandler(courseService *services.CourseService, normalizer *schema.Normalizer, requestTimeout time.Duration) *CourseHandler {
	return &CourseHandler{
		courseService:  courseService,
		normalizer:     normalizer,
		requestTimeout: requestTimeout,
	}
}

// GetCourses handles GET /v1/courses?programName=&courseCode=&normalize=
func (h *CourseHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	req, err := h.normalizer.ParseCourseRequest(r.URL.Query())
	if err != nil {
		writeError(w, models.ValidationError("Invalid request", err))
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	switch {
	case req.CourseCode != "" && req.ProgramName == "":
		writeError(w, models.ValidationError("programName is required when courseCode is given", nil))
	case req.CourseCode != "":
		if req.Normalize {
			course, err := h.courseService.GetNormalizedCourse(ctx, req.ProgramName, req.CourseCode)
			writeResult(w, course, err)
			return
		}
		doc, err := h.courseService.GetCourse(ctx, req.ProgramName, req.CourseCode)
		writeResult(w, doc, err)
	case req.ProgramName != "":
		if req.Normalize {
			courses, err := h.courseService.ListNormalizedCourses(ctx, req.ProgramName)
			writeResult(w, models.CourseArrayResponse{CourseArrayData: courses}, err)
			return
		}
		docs, err := h.courseService.ListCourses(ctx, req.ProgramName)
		writeResult(w, models.CourseArrayResponse{CourseArrayData: docs}, err)
	default:
		writeError(w, models.ValidationError("programName or courseCode is required", nil))
	}
}

// SearchCourses handles GET /v1/programs/{programName}/courses/search?field=value
func (h *CourseHandler) SearchCourses(w http.ResponseWriter, r *http.Request) {
	programName := mux.Vars(r)[PROGRAM_NAME_PATH_VAR]
	vals := r.URL.Query()

	normalize := false
	if v := vals.Get(schema.NORMALIZE_QUERY_ARG); v != "" {
		var err error
		if normalize, err = strconv.ParseBool(v); err != nil {
			writeError(w, models.ValidationError("Invalid request", err))
			return
		}
	}
	vals.Del(schema.NORMALIZE_QUERY_ARG)

	ctx, cancel := h.requestContext(r)
	defer cancel()

	queries := parseSearchQueries(vals)
	if normalize {
		courses, err := h.courseService.SearchNormalizedCourses(ctx, programName, queries)
		writeResult(w, models.CourseArrayResponse{CourseArrayData: courses}, err)
		return
	}
	docs, err := h.courseService.SearchCourses(ctx, programName, queries)
	writeResult(w, models.CourseArrayResponse{CourseArrayData: docs}, err)
}

// CreateCourse handles POST /v1/programs/{programName}/courses
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	programName := mux.Vars(r)[PROGRAM_NAME_PATH_VAR]
	var doc db.Document
	if err := decodeBody(w, r, &doc); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	course, err := h.courseService.SaveCourse(ctx, programName, doc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, course)
}

// UpdateCourse handles PATCH /v1/programs/{programName}/courses/{courseCode}
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var updates map[string]interface{}
	if err := decodeBody(w, r, &updates); err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	course, err := h.courseService.UpdateCourse(ctx, vars[PROGRAM_NAME_PATH_VAR], vars[COURSE_CODE_PATH_VAR], updates)
	writeResult(w, course, err)
}

// DeleteCourse handles DELETE /v1/programs/{programName}/courses/{courseCode}
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.courseService.DeleteCourse(ctx, vars[PROGRAM_NAME_PATH_VAR], vars[COURSE_CODE_PATH_VAR]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAssessmentChart handles GET /v1/programs/{programName}/courses/{courseCode}/assessments/chart
func (h *CourseHandler) GetAssessmentChart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx, cancel := h.requestContext(r)
	defer cancel()

	course, err := h.courseService.GetNormalizedCourse(ctx, vars[PROGRAM_NAME_PATH_VAR], vars[COURSE_CODE_PATH_VAR])
	if err != nil {
		writeError(w, err)
		return
	}

	// rendered into a buffer so a failure can still produce the JSON envelope
	var buf bytes.Buffer
	if err := util.RenderAssessmentChart(&buf, course.Code+" "+course.Title, course.Assessments); err != nil {
		writeError(w, chartError(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Println("[CourseHandler] Error writing chart:", err)
	}
}

func chartError(err error) *models.APIError {
	if errors.Is(err, util.ErrNoWeightedAssessments) {
		return models.NotFoundError("Course has no weighted assessments", err)
	}
	return models.UpstreamError("Failed to render assessment chart", err)
}

// Ping handles GET /ping
func (h *CourseHandler) Ping(w http.ResponseWriter, r *http.Request) {
	log.Println("Pinging server")
	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.courseService.Ping(ctx); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

func (h *CourseHandler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.requestTimeout)
}

// parseSearchQueries turns each field=value pair into a predicate. Values may
// carry an operator prefix: ">=3", "!=Graded", "in:a,b", "not-in:a,b", "contains:x".
func parseSearchQueries(vals url.Values) []db.Query {
	fields := make([]string, 0, len(vals))
	for field := range vals {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	queries := make([]db.Query, 0, len(fields))
	for _, field := range fields {
		for _, raw := range vals[field] {
			queries = append(queries, parseSearchValue(field, raw))
		}
	}
	return queries
}

func parseSearchValue(field, raw string) db.Query {
	switch {
	case strings.HasPrefix(raw, NOT_IN_PREFIX):
		return db.Query{Field: field, Operator: db.OpNotIn, Value: splitList(strings.TrimPrefix(raw, NOT_IN_PREFIX))}
	case strings.HasPrefix(raw, IN_PREFIX):
		return db.Query{Field: field, Operator: db.OpIn, Value: splitList(strings.TrimPrefix(raw, IN_PREFIX))}
	case strings.HasPrefix(raw, CONTAINS_PREFIX):
		return db.Query{Field: field, Operator: db.OpArrayContains, Value: strings.TrimPrefix(raw, CONTAINS_PREFIX)}
	}

	for _, op := range searchOperators {
		if !strings.HasPrefix(raw, op) {
			continue
		}
		value := strings.TrimPrefix(raw, op)
		if op == db.OpNotEqual {
			if _, ok := parseNumber(value); ok {
				return db.Query{Field: field, Operator: db.OpNotIn, Value: withNumbers([]string{value})}
			}
			return db.Query{Field: field, Operator: op, Value: value}
		}
		// range operators compare numerically when the bound is a number
		if f, ok := parseNumber(value); ok {
			return db.Query{Field: field, Operator: op, Value: f}
		}
		return db.Query{Field: field, Operator: op, Value: value}
	}

	// stored fields may hold "3" or 3, so a numeric value matches either
	if _, ok := parseNumber(raw); ok {
		return db.Query{Field: field, Operator: db.OpIn, Value: withNumbers([]string{raw})}
	}
	return db.Query{Field: field, Operator: db.OpEqual, Value: raw}
}

func splitList(s string) []interface{} {
	return withNumbers(strings.Split(s, ","))
}

// withNumbers lists each value as text and, when it is numeric, as a number too.
func withNumbers(values []string) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, v)
		if f, ok := parseNumber(v); ok {
			out = append(out, f)
		}
	}
	return out
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MAX_BODY_BYTES)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.ValidationError("Invalid JSON body", err)
	}
	return nil
}

func writeResult(w http.ResponseWriter, body interface{}, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("[CourseHandler] Error encoding response:", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	resp := models.NewErrorResponse(err)
	if resp.ErrorCode >= http.StatusInternalServerError {
		log.Printf("[CourseHandler] %v", err)
	}
	writeJSON(w, resp.ErrorCode, resp)
}
