package internal

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/way2b1/nextgen-onboarding/internal/comment"
	"github.com/way2b1/nextgen-onboarding/internal/config"
	"github.com/way2b1/nextgen-onboarding/internal/event"
	"github.com/way2b1/nextgen-onboarding/internal/flags"
	"github.com/way2b1/nextgen-onboarding/internal/onboarding"
	"github.com/way2b1/nextgen-onboarding/internal/pushsubscription"
	"github.com/way2b1/nextgen-onboarding/internal/task"
	"github.com/way2b1/nextgen-onboarding/pkg/cerr"
	"github.com/way2b1/nextgen-onboarding/pkg/clog"
)

type Server struct {
	server           *http.Server
	env              *config.Env
	taskServer       *task.Server
	commentServer    *comment.Server
	onboardingServer *onboarding.Server
	flagsServer      *flags.Server
	eventServer      *event.Server
	pushServer       *pushsubscription.Server
}

func NewServer(
	env *config.Env,
	taskServer *task.Server,
	commentServer *comment.Server,
	onboardingServer *onboarding.Server,
	flagsServer *flags.Server,
	eventServer *event.Server,
	pushServer *pushsubscription.Server,
) *Server {
	return &Server{
		env:              env,
		taskServer:       taskServer,
		commentServer:    commentServer,
		onboardingServer: onboardingServer,
		flagsServer:      flagsServer,
		eventServer:      eventServer,
		pushServer:       pushServer,
	}
}

// ListenAndServe starts the HTTP server. The provided context is the base
// context for all incoming requests, so canceling it on shutdown also ends
// the open event streams.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := net.JoinHostPort(s.env.HTTPHost, s.env.HTTPPort)
	slog.Info("starting server", "addr", addr)

	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.routes(),
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	return s.server.ListenAndServe()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		// The event stream writes directly to the connection, so it stays
		// outside the JSON response middleware.
		r.Group(func(r chi.Router) {
			r.Use(clog.SlogChiMiddleware(clog.WithChiFilter(func(r *http.Request) bool {
				return r.URL.Path != "/api/events"
			})))
			s.eventServer.Register(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(
				clog.SlogChiMiddleware(),
				cerr.NewJSONResponseChiMiddleware(),
			)
			s.taskServer.Register(r)
			s.commentServer.Register(r)
			s.onboardingServer.Register(r)
			s.flagsServer.Register(r)
			s.pushServer.Register(r)
			r.NotFound(func(w http.ResponseWriter, r *http.Request) {
				cerr.SetNewJSONError(r.Context(), cerr.NotFound, "not found", nil)
			})
		})
	})

	mux := http.NewServeMux()
	mux.Handle("/health", &HealthChecker{})
	mux.Handle("/api/", r)

	return h2c.NewHandler(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(s.apiKeyMiddleware(mux)), &http2.Server{})
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type HealthChecker struct{}

func (hc *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) apiKeyMiddleware(next http.Handler) http.Handler {
	if s.env.APIKey == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			apiKey = r.Header.Get("Authorization")
			if len(apiKey) > 7 && apiKey[:7] == "Bearer " {
				apiKey = apiKey[7:]
			}
		}
		if apiKey != s.env.APIKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
