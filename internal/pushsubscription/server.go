package pushsubscription

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"

	"github.com/way2b1/nextgen-onboarding/pkg/cerr"
)

type Server struct {
	repo           Repository
	vapidPublicKey string
}

func NewServer(repo Repository, vapidPublicKey string) *Server {
	return &Server{
		repo:           repo,
		vapidPublicKey: vapidPublicKey,
	}
}

func (s *Server) Register(r chi.Router) {
	r.Route("/push", func(r chi.Router) {
		r.Get("/vapid-public-key", s.GetVAPIDPublicKey)
		r.Post("/subscribe", s.Subscribe)
		r.Post("/unsubscribe", s.Unsubscribe)
	})
}

func (s *Server) GetVAPIDPublicKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.vapidPublicKey == "" {
		cerr.SetNewJSONError(ctx, cerr.NotFound, "push notifications are not configured", nil)
		return
	}
	cerr.SetJSONResponse(ctx, map[string]string{"publicKey": s.vapidPublicKey})
}

type subscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256DH string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

func (s *Server) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Endpoint) == "" {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "endpoint is required", nil)
		return
	}
	sub := &Subscription{
		ID:        ulid.Make().String(),
		Endpoint:  req.Endpoint,
		P256DH:    req.Keys.P256DH,
		Auth:      req.Keys.Auth,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, sub); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, sub)
}

type unsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

func (s *Server) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req unsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "invalid request body", err)
		return
	}
	if err := s.repo.DeleteByEndpoint(ctx, req.Endpoint); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, map[string]bool{"unsubscribed": true})
}
