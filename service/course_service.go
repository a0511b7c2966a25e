package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"course-server/dao"
	"course-server/db"
	"course-server/models"
	"course-server/schema"
)

const COURSE_NOT_FOUND_MESSAGE = "Course not found"

// CourseService turns DAO results into normalized courses and tagged API errors.
type CourseService struct {
	courseDao  *dao.CourseDAO
	normalizer *schema.Normalizer
}

// NewCourseService constructs a new CourseService with its DAO and normalizer.
func NewCourseService(courseDao *dao.CourseDAO, normalizer *schema.Normalizer) *CourseService {
	return &CourseService{
		courseDao:  courseDao,
		normalizer: normalizer,
	}
}

// GetCourse returns the raw stored document of one course.
func (cs *CourseService) GetCourse(ctx context.Context, programName, courseCode string) (db.Document, error) {
	doc, err := cs.courseDao.GetCourse(ctx, programName, courseCode)
	if errors.Is(err, db.ErrDocNotFound) {
		return nil, models.NotFoundError(COURSE_NOT_FOUND_MESSAGE, err)
	}
	if err != nil {
		log.Printf("[CourseService] GetCourse failed: %v", err)
		return nil, models.UpstreamError("Failed to fetch course", err)
	}
	return doc, nil
}

func (cs *CourseService) GetNormalizedCourse(ctx context.Context, programName, courseCode string) (*models.Course, error) {
	doc, err := cs.GetCourse(ctx, programName, courseCode)
	if err != nil {
		return nil, err
	}
	course, err := cs.normalizer.NormalizeCourse(doc)
	if err != nil {
		log.Printf("[CourseService] Stored course %s/%s is invalid: %v", programName, courseCode, err)
		return nil, models.UpstreamError("Stored course data is invalid", err)
	}
	return &course, nil
}

// ListCourses returns the raw documents of a program in store order.
func (cs *CourseService) ListCourses(ctx context.Context, programName string) ([]db.Document, error) {
	docs, err := cs.courseDao.ListCourses(ctx, programName)
	if err != nil {
		log.Printf("[CourseService] ListCourses failed: %v", err)
		return nil, models.UpstreamError("Failed to fetch courses", err)
	}
	return docs, nil
}

func (cs *CourseService) ListNormalizedCourses(ctx context.Context, programName string) ([]models.Course, error) {
	docs, err := cs.ListCourses(ctx, programName)
	if err != nil {
		return nil, err
	}
	return cs.normalizeAll(programName, docs)
}

// SearchCourses runs an AND chain of predicates over a program's courses.
func (cs *CourseService) SearchCourses(ctx context.Context, programName string, queries []db.Query) ([]db.Document, error) {
	docs, err := cs.courseDao.FindCourses(ctx, programName, queries)
	if errors.Is(err, db.ErrInvalidQuery) {
		return nil, models.ValidationError("Invalid query", err)
	}
	if err != nil {
		log.Printf("[CourseService] SearchCourses failed: %v", err)
		return nil, models.UpstreamError("Failed to query courses", err)
	}
	return docs, nil
}

func (cs *CourseService) SearchNormalizedCourses(ctx context.Context, programName string, queries []db.Query) ([]models.Course, error) {
	docs, err := cs.SearchCourses(ctx, programName, queries)
	if err != nil {
		return nil, err
	}
	return cs.normalizeAll(programName, docs)
}

// SaveCourse validates a raw course and stores it unchanged under its code.
func (cs *CourseService) SaveCourse(ctx context.Context, programName string, doc db.Document) (*models.Course, error) {
	course, err := cs.normalizer.NormalizeCourse(doc)
	if err != nil {
		return nil, models.ValidationError("Invalid course", err)
	}
	if err := cs.courseDao.UpsertCourse(ctx, programName, course.Code, doc); err != nil {
		log.Printf("[CourseService] SaveCourse failed: %v", err)
		return nil, models.UpstreamError("Failed to store course", err)
	}
	log.Printf("[CourseService] Saved course %s/%s", programName, course.Code)
	return &course, nil
}

// UpdateCourse applies field updates after checking the merged document still validates.
func (cs *CourseService) UpdateCourse(ctx context.Context, programName, courseCode string, updates map[string]interface{}) (*models.Course, error) {
	if len(updates) == 0 {
		return nil, models.ValidationError("No fields to update", nil)
	}
	if code, ok := updates["code"]; ok && code != courseCode {
		return nil, models.ValidationError("Course code cannot be changed", nil)
	}

	existing, err := cs.GetCourse(ctx, programName, courseCode)
	if err != nil {
		return nil, err
	}
	course, err := cs.normalizer.NormalizeCourse(db.ApplyUpdate(existing, updates))
	if err != nil {
		return nil, models.ValidationError("Invalid course", err)
	}

	err = cs.courseDao.UpdateCourse(ctx, programName, courseCode, updates)
	if errors.Is(err, db.ErrDocNotFound) {
		return nil, models.NotFoundError(COURSE_NOT_FOUND_MESSAGE, err)
	}
	if err != nil {
		log.Printf("[CourseService] UpdateCourse failed: %v", err)
		return nil, models.UpstreamError("Failed to update course", err)
	}
	return &course, nil
}

func (cs *CourseService) DeleteCourse(ctx context.Context, programName, courseCode string) error {
	deleted, err := cs.courseDao.DeleteCourse(ctx, programName, courseCode)
	if err != nil {
		log.Printf("[CourseService] DeleteCourse failed: %v", err)
		return models.UpstreamError("Failed to delete course", err)
	}
	if !deleted {
		return models.NotFoundError(COURSE_NOT_FOUND_MESSAGE, db.ErrDocNotFound)
	}
	return nil
}

// SeedCourses validates and stores courses grouped by program. It stops at the first invalid course.
func (cs *CourseService) SeedCourses(ctx context.Context, coursesByProgram map[string][]db.Document) (int, error) {
	stored := 0
	for programName, docs := range coursesByProgram {
		for i, doc := range docs {
			if _, err := cs.SaveCourse(ctx, programName, doc); err != nil {
				return stored, fmt.Errorf("seed course %s[%d]: %w", programName, i, err)
			}
			stored++
		}
	}
	return stored, nil
}

func (cs *CourseService) Ping(ctx context.Context) error {
	if err := cs.courseDao.Ping(ctx); err != nil {
		return models.UpstreamError("Document store unavailable", err)
	}
	return nil
}

func (cs *CourseService) normalizeAll(programName string, docs []db.Document) ([]models.Course, error) {
	courses, err := cs.normalizer.NormalizeCourses(docs)
	if err != nil {
		log.Printf("[CourseService] Stored courses of %s are invalid: %v", programName, err)
		return nil, models.UpstreamError("Stored course data is invalid", err)
	}
	return courses, nil
}
