package di

import (
	"context"
	"fmt"
	"log"
	"time"

	"course-server/config"
	"course-server/dao"
	"course-server/db"
	"course-server/schema"
	"course-server/server"
	"course-server/server/handlers"
	services "course-server/service"
	"course-server/util"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

const STORE_CONNECT_TIMEOUT = 10 * time.Second
const SEED_REFRESH_TIMEOUT = 2 * time.Minute

// Container holds all application dependencies.
type Container struct {
	Config                  config.Config
	DocumentStore           db.DocumentStore
	CourseDao               *dao.CourseDAO
	Normalizer              *schema.Normalizer
	CourseService           *services.CourseService
	CourseHandler           *handlers.CourseHandler
	MuxRouter               *mux.Router
	Router                  *server.Router
	CourseHttpServer        *server.CourseHttpServer
	// nil when no seed file is configured
	CoursesRefresherService *services.CoursesRefresherService
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(cfg config.Config) *Container {
	log.Printf("initializing container - env: %s, store: %s", cfg.Env, cfg.StoreBackend)

	// Initialize the document store and make sure it answers
	documentStore := newDocumentStore(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), STORE_CONNECT_TIMEOUT)
	defer cancel()
	if err := documentStore.Ping(ctx); err != nil {
		panic(fmt.Sprintf("Failed to connect to %s document store: %v", cfg.StoreBackend, err))
	}

	// Initialize Course DAO
	courseDao := dao.NewCourseDAO(documentStore, cfg.DatabaseName)

	// Initialize schema normalizer
	normalizer := schema.NewNormalizer()

	// Initialize service layer with the DAO dependency
	courseService := services.NewCourseService(courseDao, normalizer)

	// Initialize course handler
	courseHandler := handlers.NewCourseHandler(courseService, normalizer, cfg.RequestTimeout)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(courseHandler, muxRouter)

	// initialize course server
	courseHttpServer := server.NewCourseHttpServer(router, muxRouter, cfg.Port, cfg.CorsOrigin, config.SHUTDOWN_TIMEOUT)

	var coursesRefresherService *services.CoursesRefresherService
	if cfg.SeedFile != "" {
		seedFile := cfg.SeedFile
		coursesRefresherService = services.NewCoursesRefresherService(courseService, func() (map[string][]db.Document, error) {
			return util.ReadCoursesSeedFromJSON(seedFile)
		}, SEED_REFRESH_TIMEOUT)
	}

	return &Container{
		Config:           cfg,
		DocumentStore:    documentStore,
		CourseDao:        courseDao,
		Normalizer:       normalizer,
		CourseService:    courseService,
		CourseHandler:    courseHandler,
		MuxRouter:        muxRouter,
		Router:           router,
		CourseHttpServer: courseHttpServer,

		CoursesRefresherService: coursesRefresherService,
	}
}

func newDocumentStore(cfg config.Config) db.DocumentStore {
	switch cfg.StoreBackend {
	case config.STORE_BACKEND_MEMORY:
		log.Printf("Using in-memory document store")
		return db.NewMockDocumentStore()
	case config.STORE_BACKEND_MONGO:
		log.Printf("Using mongo document store")
		ctx, cancel := context.WithTimeout(context.Background(), STORE_CONNECT_TIMEOUT)
		defer cancel()
		client, err := db.ConnectMongoDB(ctx, cfg.MongoURI)
		if err != nil {
			panic(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		}
		return db.NewMongoDocumentStore(client)
	case config.STORE_BACKEND_REDIS:
		log.Printf("Using redis document store")
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return db.NewRedisDocumentStore(redisInternalClient)
	}
	panic(fmt.Sprintf("Unknown store backend %q", cfg.StoreBackend))
}

// Close releases the document store connection.
func (c *Container) Close(ctx context.Context) error {
	return c.DocumentStore.Close(ctx)
}
