package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/careerhub/resume-api/internal/api/middleware"
	"github.com/careerhub/resume-api/internal/core/domain"
	"github.com/careerhub/resume-api/internal/core/ports"
)

type stubResumeService struct {
	createFn       func(ctx context.Context, input ports.CreateResumeInput) (*domain.Resume, error)
	listFn         func(ctx context.Context, input ports.ListResumesInput) ([]*domain.Resume, error)
	getFn          func(ctx context.Context, actorID, role, resumeID string) (*domain.Resume, error)
	updateFn       func(ctx context.Context, input ports.UpdateResumeInput) (*domain.Resume, error)
	deleteFn       func(ctx context.Context, actorID, resumeID string) error
	updateStatusFn func(ctx context.Context, input ports.TransitionInput) (*domain.ResumeStatusLog, error)
	historyFn      func(ctx context.Context, resumeID string) ([]*domain.ResumeStatusLog, error)
}

func (s *stubResumeService) Create(ctx context.Context, input ports.CreateResumeInput) (*domain.Resume, error) {
	return s.createFn(ctx, input)
}

func (s *stubResumeService) List(ctx context.Context, input ports.ListResumesInput) ([]*domain.Resume, error) {
	return s.listFn(ctx, input)
}

func (s *stubResumeService) Get(ctx context.Context, actorID, role, resumeID string) (*domain.Resume, error) {
	return s.getFn(ctx, actorID, role, resumeID)
}

func (s *stubResumeService) Update(ctx context.Context, input ports.UpdateResumeInput) (*domain.Resume, error) {
	return s.updateFn(ctx, input)
}

func (s *stubResumeService) Delete(ctx context.Context, actorID, resumeID string) error {
	return s.deleteFn(ctx, actorID, resumeID)
}

func (s *stubResumeService) UpdateStatus(ctx context.Context, input ports.TransitionInput) (*domain.ResumeStatusLog, error) {
	return s.updateStatusFn(ctx, input)
}

func (s *stubResumeService) History(ctx context.Context, resumeID string) ([]*domain.ResumeStatusLog, error) {
	return s.historyFn(ctx, resumeID)
}

type stubDispatcher struct {
	notices []ports.StatusNotice
}

func (d *stubDispatcher) Enqueue(notice ports.StatusNotice) {
	d.notices = append(d.notices, notice)
}

var longIntroduction = strings.Repeat("Production Go, distributed systems, and hiring pipelines. ", 4)

func asApplicant(c echo.Context) {
	c.Set(middleware.ContextUserKey, &domain.User{ID: "user_1", Name: "Alice", Role: domain.RoleApplicant})
}

func asRecruiter(c echo.Context) {
	c.Set(middleware.ContextUserKey, &domain.User{ID: "recruiter_1", Name: "Rita", Role: domain.RoleRecruiter})
}

func TestResumeHandler_Create_Success(t *testing.T) {
	stub := &stubResumeService{
		createFn: func(_ context.Context, input ports.CreateResumeInput) (*domain.Resume, error) {
			if input.AuthorID != "user_1" || input.AuthorName != "Alice" {
				t.Fatalf("author not taken from context: %+v", input)
			}
			return &domain.Resume{
				ID:           "resume_1",
				AuthorID:     input.AuthorID,
				Title:        input.Title,
				Introduction: input.Introduction,
				Status:       domain.StatusApplied,
			}, nil
		},
	}
	handler := NewResumeHandler(stub, &stubDispatcher{})

	body, _ := json.Marshal(map[string]string{
		"title":        "Backend Engineer",
		"introduction": longIntroduction,
	})
	c, rec := newTestContext(t, http.MethodPost, "/resumes", string(body))
	asApplicant(c)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "applied" {
		t.Fatalf("expected initial status applied, got %v", resp["status"])
	}
}

func TestResumeHandler_Create_ShortIntroduction(t *testing.T) {
	stub := &stubResumeService{
		createFn: func(context.Context, ports.CreateResumeInput) (*domain.Resume, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewResumeHandler(stub, &stubDispatcher{})

	c, _ := newTestContext(t, http.MethodPost, "/resumes",
		`{"title":"Backend Engineer","introduction":"too short"}`)
	asApplicant(c)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestResumeHandler_List_PassesQueryParams(t *testing.T) {
	stub := &stubResumeService{
		listFn: func(_ context.Context, input ports.ListResumesInput) ([]*domain.Resume, error) {
			if input.Status != "screening" || input.Sort != "asc" {
				t.Fatalf("query params not forwarded: %+v", input)
			}
			if input.ActorID != "user_1" || input.Role != domain.RoleApplicant {
				t.Fatalf("actor not forwarded: %+v", input)
			}
			return nil, nil
		},
	}
	handler := NewResumeHandler(stub, &stubDispatcher{})

	c, rec := newTestContext(t, http.MethodGet, "/resumes?status=screening&sort=asc", "")
	asApplicant(c)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// Empty result renders as [] not null.
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestResumeHandler_Get_NotFound(t *testing.T) {
	stub := &stubResumeService{
		getFn: func(context.Context, string, string, string) (*domain.Resume, error) {
			return nil, domain.ErrResumeNotFound
		},
	}
	handler := NewResumeHandler(stub, &stubDispatcher{})

	c, _ := newTestContext(t, http.MethodGet, "/resumes/missing", "")
	asApplicant(c)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.Get(c); !errors.Is(err, domain.ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound passed through, got %v", err)
	}
}

func TestResumeHandler_Update_EmptyPatchRejected(t *testing.T) {
	stub := &stubResumeService{
		updateFn: func(context.Context, ports.UpdateResumeInput) (*domain.Resume, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewResumeHandler(stub, &stubDispatcher{})

	c, _ := newTestContext(t, http.MethodPatch, "/resumes/resume_1", `{}`)
	asApplicant(c)
	c.SetParamNames("id")
	c.SetParamValues("resume_1")

	err := handler.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestResumeHandler_Delete_Success(t *testing.T) {
	deleted := ""
	stub := &stubResumeService{
		deleteFn: func(_ context.Context, actorID, resumeID string) error {
			if actorID != "user_1" {
				t.Fatalf("unexpected actor: %s", actorID)
			}
			deleted = resumeID
			return nil
		},
	}
	handler := NewResumeHandler(stub, &stubDispatcher{})

	c, rec := newTestContext(t, http.MethodDelete, "/resumes/resume_1", "")
	asApplicant(c)
	c.SetParamNames("id")
	c.SetParamValues("resume_1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "resume_1" {
		t.Fatalf("expected resume_1 deleted, got %q", deleted)
	}
}

func TestResumeHandler_UpdateStatus_Success(t *testing.T) {
	now := time.Now().UTC()
	stub := &stubResumeService{
		updateStatusFn: func(_ context.Context, input ports.TransitionInput) (*domain.ResumeStatusLog, error) {
			if input.ActorID != "recruiter_1" || input.Status != domain.StatusAccepted || input.Reason != "strong fit" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.ResumeStatusLog{
				ID:          "log_1",
				ResumeID:    input.ResumeID,
				RecruiterID: input.ActorID,
				OldStatus:   domain.StatusApplied,
				NewStatus:   input.Status,
				Reason:      input.Reason,
				CreatedAt:   now,
			}, nil
		},
	}
	dispatcher := &stubDispatcher{}
	handler := NewResumeHandler(stub, dispatcher)

	c, rec := newTestContext(t, http.MethodPatch, "/resumes/resume_1/status",
		`{"status":"accepted","reason":"strong fit"}`)
	asRecruiter(c)
	c.SetParamNames("id")
	c.SetParamValues("resume_1")

	if err := handler.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp statusLogResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.OldStatus != "applied" || resp.NewStatus != "accepted" {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	if len(dispatcher.notices) != 1 {
		t.Fatalf("expected one notice enqueued, got %d", len(dispatcher.notices))
	}
	notice := dispatcher.notices[0]
	if notice.ResumeID != "resume_1" || notice.NewStatus != "accepted" || notice.Reason != "strong fit" {
		t.Fatalf("unexpected notice: %+v", notice)
	}
}

func TestResumeHandler_UpdateStatus_UnknownStatus(t *testing.T) {
	stub := &stubResumeService{
		updateStatusFn: func(context.Context, ports.TransitionInput) (*domain.ResumeStatusLog, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	dispatcher := &stubDispatcher{}
	handler := NewResumeHandler(stub, dispatcher)

	c, _ := newTestContext(t, http.MethodPatch, "/resumes/resume_1/status",
		`{"status":"archived","reason":"done"}`)
	asRecruiter(c)
	c.SetParamNames("id")
	c.SetParamValues("resume_1")

	err := handler.UpdateStatus(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if len(dispatcher.notices) != 0 {
		t.Fatalf("no notice may be enqueued on failure")
	}
}

func TestResumeHandler_UpdateStatus_FailureEnqueuesNothing(t *testing.T) {
	stub := &stubResumeService{
		updateStatusFn: func(context.Context, ports.TransitionInput) (*domain.ResumeStatusLog, error) {
			return nil, domain.ErrResumeNotFound
		},
	}
	dispatcher := &stubDispatcher{}
	handler := NewResumeHandler(stub, dispatcher)

	c, _ := newTestContext(t, http.MethodPatch, "/resumes/resume_1/status",
		`{"status":"accepted","reason":"strong fit"}`)
	asRecruiter(c)
	c.SetParamNames("id")
	c.SetParamValues("resume_1")

	if err := handler.UpdateStatus(c); !errors.Is(err, domain.ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound passed through, got %v", err)
	}
	if len(dispatcher.notices) != 0 {
		t.Fatalf("no notice may be enqueued on failure")
	}
}

func TestResumeHandler_History_NewestFirst(t *testing.T) {
	now := time.Now().UTC()
	stub := &stubResumeService{
		historyFn: func(_ context.Context, resumeID string) ([]*domain.ResumeStatusLog, error) {
			return []*domain.ResumeStatusLog{
				{ID: "log_2", ResumeID: resumeID, OldStatus: domain.StatusScreening, NewStatus: domain.StatusAccepted, CreatedAt: now},
				{ID: "log_1", ResumeID: resumeID, OldStatus: domain.StatusApplied, NewStatus: domain.StatusScreening, CreatedAt: now.Add(-time.Hour)},
			}, nil
		},
	}
	handler := NewResumeHandler(stub, &stubDispatcher{})

	c, rec := newTestContext(t, http.MethodGet, "/resumes/resume_1/logs", "")
	asRecruiter(c)
	c.SetParamNames("id")
	c.SetParamValues("resume_1")

	if err := handler.History(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []statusLogResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0].ID != "log_2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
