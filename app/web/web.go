// Package web implements http api of the task cache: coordinator webhook delivering proof
// submissions, task put/last endpoints for producers, status, schemas and metrics.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"

	"github.com/umputun/taskcache/app/coordinator"
	"github.com/umputun/taskcache/app/store"
)

//go:generate moq -out mocks/task_store.go -pkg mocks -skip-ensure -fmt goimports . TaskStore

// TaskStore defines task store operations used by the api, implemented by store.TaskStore
type TaskStore interface {
	Put(rec store.Record) error
	GetLast() (*store.Record, error)
	Len() (int, error)
	Location() string
}

// Config defines web server parameters
type Config struct {
	Store        TaskStore            // required
	Listener     coordinator.Listener // required, gets proof submissions from webhook
	Version      string
	AuthUser     string  // basic auth user name, defaults to "taskcache"
	PasswordHash string  // bcrypt hash for basic auth, empty disables auth
	WebhookLimit float64 // max webhook requests per second per client, 0 means 100
}

// Server represents the web server
type Server struct {
	store        TaskStore
	listener     coordinator.Listener
	version      string
	authUser     string
	passwordHash string
	webhookLimit float64
	startedAt    time.Time
	registry     *prometheus.Registry
	metrics      metrics
}

type metrics struct {
	submitted *prometheus.CounterVec
	puts      *prometheus.CounterVec
	lookups   *prometheus.CounterVec
}

// New creates a new web server
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("web server initialization failed: Store is required")
	}
	if cfg.Listener == nil {
		return nil, fmt.Errorf("web server initialization failed: Listener is required")
	}

	res := &Server{
		store:        cfg.Store,
		listener:     cfg.Listener,
		version:      cfg.Version,
		authUser:     cfg.AuthUser,
		passwordHash: cfg.PasswordHash,
		webhookLimit: cfg.WebhookLimit,
		startedAt:    time.Now(),
		registry:     prometheus.NewRegistry(),
	}
	if res.authUser == "" {
		res.authUser = "taskcache"
	}
	if res.webhookLimit <= 0 {
		res.webhookLimit = 100
	}

	res.metrics = metrics{
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskcache", Name: "proof_submitted_total",
			Help: "proof submission notifications received from coordinator"}, []string{"result"}),
		puts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskcache", Name: "task_put_total",
			Help: "tasks written via api"}, []string{"result"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskcache", Name: "task_last_total",
			Help: "last task lookups via api"}, []string{"result"}),
	}
	res.registry.MustRegister(res.metrics.submitted, res.metrics.puts, res.metrics.lookups)
	return res, nil
}

// Run starts the web server, blocks until ctx is canceled
func (s *Server) Run(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown server: %v", err)
		}
	}()

	log.Printf("[INFO] starting web server on %s", address)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// routes returns the http.Handler with all routes configured
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	router.Use(
		rest.RealIP,
		rest.Recoverer(log.Default()),
		rest.Throttle(1000),
		rest.AppInfo("taskcache", "umputun", s.version),
		rest.Ping,
		rest.SizeLimit(1024*1024), // tasks carry chunk data
		logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler,
	)

	router.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	webhookLimiter := tollbooth.NewLimiter(s.webhookLimit, nil)
	webhookLimiter.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})

	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)
		if s.passwordHash != "" {
			log.Printf("[INFO] basic auth enabled for api")
			api.Use(rest.BasicAuth(s.checkAuth))
		}
		api.With(tollbooth.HTTPMiddleware(webhookLimiter)).HandleFunc("POST /proof/submitted", s.handleProofSubmitted)
		api.HandleFunc("POST /tasks", s.handlePutTask)
		api.HandleFunc("GET /tasks/last", s.handleLastTask)
		api.HandleFunc("GET /status", s.handleStatus)
		api.HandleFunc("GET /schema/{name}", s.handleSchema)
	})

	return router
}

func (s *Server) checkAuth(user, passwd string) bool {
	if user != s.authUser {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(passwd)) == nil
}
