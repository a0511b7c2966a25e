package services

import (
	"context"
	"log"
	"time"

	"course-server/db"
)

// CourseSeedLoader returns raw course documents grouped by program.
type CourseSeedLoader func() (map[string][]db.Document, error)

// CoursesRefresherService periodically reloads a course seed into the store.
type CoursesRefresherService struct {
	courseService  *CourseService
	loadSeed       CourseSeedLoader
	refreshTimeout time.Duration
}

// NewCoursesRefresherService constructs a new refresher with its dependencies.
func NewCoursesRefresherService(
	courseService *CourseService,
	loadSeed CourseSeedLoader,
	refreshTimeout time.Duration,
) *CoursesRefresherService {
	return &CoursesRefresherService{
		courseService:  courseService,
		loadSeed:       loadSeed,
		refreshTimeout: refreshTimeout,
	}
}

// StartPeriodicJob launches the background loop at the given interval. It stops when ctx is done.
func (cr *CoursesRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go cr.startPeriodicJob(ctx, interval)
}

func (cr *CoursesRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[CoursesRefresherService] Periodic job stopped.")
			return
		case <-ticker.C:
		}

		log.Println("[CoursesRefresherService] Running periodic courses refresher job.")
		if stored, err := cr.RefreshCourses(ctx); err != nil {
			log.Printf("[CoursesRefresherService] RefreshCourses returned error: %v", err)
		} else {
			log.Printf("[CoursesRefresherService] RefreshCourses stored %d courses.", stored)
		}
	}
}

// RefreshCourses loads the seed and upserts every course, returning how many were stored.
func (cr *CoursesRefresherService) RefreshCourses(ctx context.Context) (int, error) {
	seed, err := cr.loadSeed()
	if err != nil {
		return 0, err
	}

	if cr.refreshTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cr.refreshTimeout)
		defer cancel()
	}
	return cr.courseService.SeedCourses(ctx, seed)
}
