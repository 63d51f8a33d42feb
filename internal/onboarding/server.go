package onboarding

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/way2b1/nextgen-onboarding/internal/task"
	"github.com/way2b1/nextgen-onboarding/pkg/cerr"
)

// Server exposes the onboarding surface over HTTP. Mutating endpoints are
// idempotent so clients can call them on every page load.
type Server struct {
	factory  *Factory
	banner   *Banner
	triggers *Triggers
	repo     task.Repository
	identity Identity
}

func NewServer(factory *Factory, banner *Banner, triggers *Triggers, repo task.Repository, identity Identity) *Server {
	return &Server{
		factory:  factory,
		banner:   banner,
		triggers: triggers,
		repo:     repo,
		identity: identity,
	}
}

func (s *Server) Register(r chi.Router) {
	r.Route("/onboarding", func(r chi.Router) {
		r.Post("/ensure", s.EnsureTask)
		r.Get("/progress", s.GetProgress)
		r.Get("/banner", s.GetBanner)
		r.Post("/banner/dismiss", s.DismissBanner)
		r.Get("/hints", s.ListHints)
		r.Post("/visit-homepage", s.VisitHomepage)
	})
}

func (s *Server) EnsureTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, err := s.factory.EnsureTask(ctx, s.identity)
	if err != nil {
		cerr.SetNewJSONError(ctx, cerr.Internal, "failed to ensure onboarding task", err)
		return
	}
	cerr.SetJSONResponse(ctx, t)
}

func (s *Server) GetProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, err := s.repo.FindOnboarding(ctx)
	if err != nil {
		cerr.SetNewJSONError(ctx, cerr.Internal, "failed to load onboarding task", err)
		return
	}
	if t == nil {
		cerr.SetNewJSONError(ctx, cerr.NotFound, "onboarding task not found", nil)
		return
	}
	cerr.SetJSONResponse(ctx, ComputeProgress(t))
}

func (s *Server) GetBanner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state, err := s.banner.State(ctx)
	if err != nil {
		cerr.SetNewJSONError(ctx, cerr.Internal, "failed to resolve banner state", err)
		return
	}
	cerr.SetJSONResponse(ctx, state)
}

func (s *Server) DismissBanner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.banner.Dismiss(ctx); err != nil {
		cerr.SetNewJSONError(ctx, cerr.Internal, "failed to dismiss banner", err)
		return
	}
	cerr.SetJSONResponse(ctx, map[string]bool{"dismissed": true})
}

func (s *Server) ListHints(w http.ResponseWriter, r *http.Request) {
	cerr.SetJSONResponse(r.Context(), Hints())
}

func (s *Server) VisitHomepage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, err := s.repo.FindOnboarding(ctx)
	if err != nil {
		cerr.SetNewJSONError(ctx, cerr.Internal, "failed to load onboarding task", err)
		return
	}
	if t == nil {
		cerr.SetJSONResponse(ctx, map[string]bool{"completed": false})
		return
	}
	if err := s.triggers.HomepageVisited(ctx, t); err != nil {
		cerr.SetNewJSONError(ctx, cerr.Internal, "failed to record homepage visit", err)
		return
	}
	cerr.SetJSONResponse(ctx, map[string]bool{"completed": true})
}
