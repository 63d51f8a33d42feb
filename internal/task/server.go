package task

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/way2b1/nextgen-onboarding/internal/eventbus"
	"github.com/way2b1/nextgen-onboarding/pkg/cerr"
)

// ChecklistToggler applies a checklist item change. Implemented by the
// onboarding engine, which layers completion detection on top of the plain
// state change.
type ChecklistToggler interface {
	ToggleItem(ctx context.Context, taskID, itemID string, completed bool) (*Task, error)
}

// StatusObserver runs after a status change has been persisted.
type StatusObserver interface {
	StatusChanged(ctx context.Context, t *Task, oldStatus, newStatus Status) error
}

type Server struct {
	repo     Repository
	bus      *eventbus.Bus
	toggler  ChecklistToggler
	observer StatusObserver
}

func NewServer(repo Repository, bus *eventbus.Bus, toggler ChecklistToggler, observer StatusObserver) *Server {
	return &Server{
		repo:     repo,
		bus:      bus,
		toggler:  toggler,
		observer: observer,
	}
}

func (s *Server) Register(r chi.Router) {
	r.Get("/tasks", s.ListTasks)
	r.Get("/tasks/{id}", s.GetTask)
	r.Post("/tasks/{id}/status", s.UpdateStatus)
	r.Post("/tasks/{id}/checklist/{itemID}", s.ToggleChecklistItem)
}

func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tasks, err := s.repo.Load(ctx)
	if err != nil {
		cerr.SetNewJSONError(ctx, cerr.Internal, "failed to load tasks", err)
		return
	}
	if tasks == nil {
		tasks = []*Task{}
	}
	cerr.SetJSONResponse(ctx, tasks)
}

func (s *Server) GetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, err := s.repo.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, t)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "invalid request body", err)
		return
	}
	newStatus := Status(req.Status)
	if !newStatus.Valid() {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "unknown status: "+req.Status, nil)
		return
	}

	t, err := s.repo.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	oldStatus := t.Status
	if newStatus == oldStatus {
		cerr.SetJSONResponse(ctx, t)
		return
	}

	updated := t.Clone()
	updated.Status = newStatus
	updated.LastModified = time.Now()
	if err := s.repo.Replace(ctx, updated); err != nil {
		cerr.SetNewJSONError(ctx, cerr.Internal, "failed to save task", err)
		return
	}
	s.bus.PublishNew(eventbus.EventTaskUpdated, updated.ID, "", map[string]string{
		"oldStatus": string(oldStatus),
		"newStatus": string(newStatus),
	})

	if s.observer != nil {
		if err := s.observer.StatusChanged(ctx, updated, oldStatus, newStatus); err != nil {
			cerr.SetNewJSONError(ctx, cerr.Internal, "failed to run status change hooks", err)
			return
		}
	}
	cerr.SetJSONResponse(ctx, updated)
}

type toggleChecklistRequest struct {
	Completed bool `json:"completed"`
}

func (s *Server) ToggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req toggleChecklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "invalid request body", err)
		return
	}
	t, err := s.toggler.ToggleItem(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "itemID"), req.Completed)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, t)
}
