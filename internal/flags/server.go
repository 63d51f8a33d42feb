package flags

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/way2b1/nextgen-onboarding/pkg/cerr"
)

type Server struct {
	service *Service
}

func NewServer(service *Service) *Server {
	return &Server{service: service}
}

func (s *Server) Register(r chi.Router) {
	r.Route("/flags/{key}", func(r chi.Router) {
		r.Get("/", s.GetFlag)
		r.Post("/seen", s.MarkSeen)
	})
}

type flagResponse struct {
	Key       string `json:"key"`
	FirstTime bool   `json:"firstTime"`
}

func (s *Server) GetFlag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := chi.URLParam(r, "key")
	cerr.SetJSONResponse(ctx, flagResponse{
		Key:       key,
		FirstTime: s.service.IsFirstTime(ctx, key),
	})
}

func (s *Server) MarkSeen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := chi.URLParam(r, "key")
	if err := s.service.MarkAsSeen(ctx, key); err != nil {
		cerr.SetNewJSONError(ctx, cerr.Internal, "failed to mark flag as seen", err)
		return
	}
	cerr.SetJSONResponse(ctx, flagResponse{Key: key, FirstTime: false})
}
