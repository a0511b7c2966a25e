package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// CourseRoutes is implemented by handlers.CourseHandler.
type CourseRoutes interface {
	GetCourses(w http.ResponseWriter, r *http.Request)
	SearchCourses(w http.ResponseWriter, r *http.Request)
	CreateCourse(w http.ResponseWriter, r *http.Request)
	UpdateCourse(w http.ResponseWriter, r *http.Request)
	DeleteCourse(w http.ResponseWriter, r *http.Request)
	GetAssessmentChart(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	courseHandler CourseRoutes
	router        *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	courseHandler CourseRoutes,
	router *mux.Router) *Router {
	return &Router{
		courseHandler: courseHandler,
		router:        router,
	}
}

func (r *Router) RegisterRoutes() {
	// expects ?programName={string}&courseCode={string}&normalize={bool}
	r.router.HandleFunc("/v1/courses", r.courseHandler.GetCourses).Methods("GET")

	programs := r.router.PathPrefix("/v1/programs/{programName}/courses").Subrouter()
	// expects ?{field}={value}, value optionally prefixed by an operator
	programs.HandleFunc("/search", r.courseHandler.SearchCourses).Methods("GET")
	programs.HandleFunc("", r.courseHandler.CreateCourse).Methods("POST")
	programs.HandleFunc("/{courseCode}", r.courseHandler.UpdateCourse).Methods("PATCH")
	programs.HandleFunc("/{courseCode}", r.courseHandler.DeleteCourse).Methods("DELETE")
	programs.HandleFunc("/{courseCode}/assessments/chart", r.courseHandler.GetAssessmentChart).Methods("GET")

	r.router.HandleFunc("/ping", r.courseHandler.Ping).Methods("GET")
}
