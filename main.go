package main

import (
	"context"
	"log"

	"course-server/config"
	"course-server/di"
)

func main() {
	cfg := config.Load()
	container := di.NewContainer(cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.SHUTDOWN_TIMEOUT)
		defer cancel()
		if err := container.Close(ctx); err != nil {
			log.Printf("[MAIN] Failed to close document store: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if refresher := container.CoursesRefresherService; refresher != nil {
		log.Printf("[MAIN] Seeding courses from %s", cfg.SeedFile)
		stored, err := refresher.RefreshCourses(ctx)
		if err != nil {
			log.Printf("[MAIN] Failed to seed courses: %v", err)
			return
		}
		log.Printf("[MAIN] Seeded %d courses", stored)

		if cfg.SeedRefreshInterval > 0 {
			log.Printf("[MAIN] Reloading seed every %v", cfg.SeedRefreshInterval)
			refresher.StartPeriodicJob(ctx, cfg.SeedRefreshInterval)
		}
	}

	log.Println("[MAIN] starting server!")
	if err := container.CourseHttpServer.Start(); err != nil {
		log.Printf("[MAIN] Server stopped: %v", err)
	}
}
