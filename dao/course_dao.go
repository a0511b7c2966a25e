package dao

import (
	"context"
	"fmt"
	"log"

	"course-server/db"
)

// CourseDAO stores course documents with one collection per program and the
// course code as the document id.
type CourseDAO struct {
	store    db.DocumentStore
	database string
}

// NewCourseDAO initializes a CourseDAO over the given store and database name.
func NewCourseDAO(store db.DocumentStore, database string) *CourseDAO {
	return &CourseDAO{store: store, database: database}
}

// GetCourse returns the raw course document; db.ErrDocNotFound when absent.
func (dao *CourseDAO) GetCourse(ctx context.Context, programName, courseCode string) (db.Document, error) {
	doc, err := dao.store.GetDoc(ctx, dao.database, programName, courseCode)
	if err != nil {
		return nil, fmt.Errorf("[CourseDAO] failed to get course %s/%s: %w", programName, courseCode, err)
	}
	return doc, nil
}

// ListCourses returns every course of a program in store order.
func (dao *CourseDAO) ListCourses(ctx context.Context, programName string) ([]db.Document, error) {
	log.Printf("[CourseDAO] Listing courses of %s", programName)
	docs, err := dao.store.GetAllDocs(ctx, dao.database, programName)
	if err != nil {
		return nil, fmt.Errorf("[CourseDAO] failed to list courses of %s: %w", programName, err)
	}
	return docs, nil
}

func (dao *CourseDAO) FindCourses(ctx context.Context, programName string, queries []db.Query) ([]db.Document, error) {
	docs, err := dao.store.GetDocByQuery(ctx, dao.database, programName, queries)
	if err != nil {
		return nil, fmt.Errorf("[CourseDAO] failed to query courses of %s: %w", programName, err)
	}
	return docs, nil
}

// UpsertCourse stores the document under its course code, replacing any previous version.
func (dao *CourseDAO) UpsertCourse(ctx context.Context, programName, courseCode string, doc db.Document) error {
	if _, err := dao.store.AddDoc(ctx, dao.database, programName, courseCode, doc); err != nil {
		return fmt.Errorf("[CourseDAO] failed to upsert course %s/%s: %w", programName, courseCode, err)
	}
	return nil
}

func (dao *CourseDAO) UpdateCourse(ctx context.Context, programName, courseCode string, updates map[string]interface{}) error {
	if err := dao.store.UpdateDoc(ctx, dao.database, programName, courseCode, updates); err != nil {
		return fmt.Errorf("[CourseDAO] failed to update course %s/%s: %w", programName, courseCode, err)
	}
	return nil
}

func (dao *CourseDAO) DeleteCourse(ctx context.Context, programName, courseCode string) (bool, error) {
	deleted, err := dao.store.DelDoc(ctx, dao.database, programName, courseCode)
	if err != nil {
		return false, fmt.Errorf("[CourseDAO] failed to delete course %s/%s: %w", programName, courseCode, err)
	}
	if deleted {
		log.Printf("[CourseDAO] Deleted course %s/%s", programName, courseCode)
	}
	return deleted, nil
}

func (dao *CourseDAO) Ping(ctx context.Context) error {
	return dao.store.Ping(ctx)
}
