package comment

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"

	"github.com/way2b1/nextgen-onboarding/internal/eventbus"
	"github.com/way2b1/nextgen-onboarding/internal/task"
	"github.com/way2b1/nextgen-onboarding/pkg/cerr"
)

// MentionObserver runs after a comment has been persisted, to complete the
// mention checklist step when the text qualifies.
type MentionObserver interface {
	CommentSubmitted(ctx context.Context, t *task.Task, text string) error
}

type Server struct {
	repo     Repository
	tasks    task.Repository
	bus      *eventbus.Bus
	observer MentionObserver
}

func NewServer(repo Repository, tasks task.Repository, bus *eventbus.Bus, observer MentionObserver) *Server {
	return &Server{
		repo:     repo,
		tasks:    tasks,
		bus:      bus,
		observer: observer,
	}
}

func (s *Server) Register(r chi.Router) {
	r.Get("/tasks/{id}/comments", s.ListComments)
	r.Post("/tasks/{id}/comments", s.CreateComment)
}

func (s *Server) ListComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, err := s.tasks.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	comments, err := s.repo.List(ctx, t.ID)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	if comments == nil {
		comments = []*Comment{}
	}
	cerr.SetJSONResponse(ctx, comments)
}

type createCommentRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

func (s *Server) CreateComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "comment text is empty", nil)
		return
	}

	t, err := s.tasks.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}

	author := req.Author
	if author == "" {
		author = t.Assignee
	}
	c := &Comment{
		ID:        ulid.Make().String(),
		TaskID:    t.ID,
		Author:    author,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Add(ctx, c); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	s.bus.PublishNew(eventbus.EventCommentCreated, t.ID, "", nil)

	if s.observer != nil {
		if err := s.observer.CommentSubmitted(ctx, t, c.Text); err != nil {
			cerr.SetNewJSONError(ctx, cerr.Internal, "failed to run comment hooks", err)
			return
		}
	}
	cerr.SetJSONResponse(ctx, c)
}
