package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type CourseHttpServer struct {
	router          *Router
	muxRouter       *mux.Router
	port            string
	corsOrigin      string
	shutdownTimeout time.Duration
	registerOnce    sync.Once
}

func NewCourseHttpServer(router *Router, muxRouter *mux.Router, port, corsOrigin string, shutdownTimeout time.Duration) *CourseHttpServer {
	return &CourseHttpServer{
		router:          router,
		muxRouter:       muxRouter,
		port:            port,
		corsOrigin:      corsOrigin,
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler registers the routes once and wraps them with the CORS policy.
func (s *CourseHttpServer) Handler() http.Handler {
	s.registerOnce.Do(s.router.RegisterRoutes)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{s.corsOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.muxRouter)
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *CourseHttpServer) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", ":"+s.port)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is done.
func (s *CourseHttpServer) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("[CourseHttpServer] Starting server on %s", listener.Addr())
		serveErr <- srv.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("[CourseHttpServer] Shutting down the server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("[CourseHttpServer] Server exiting")
	return nil
}
