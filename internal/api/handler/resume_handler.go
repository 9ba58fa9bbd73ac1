package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerhub/resume-api/internal/api/metrics"
	"github.com/careerhub/resume-api/internal/core/domain"
	"github.com/careerhub/resume-api/internal/core/ports"
)

// NoticeDispatcher is the interface the handler uses to fan out status
// notices after a committed transition.
type NoticeDispatcher interface {
	Enqueue(notice ports.StatusNotice)
}

// ResumeHandler handles HTTP requests for resume operations.
type ResumeHandler struct {
	service    ports.ResumeService
	dispatcher NoticeDispatcher
}

func NewResumeHandler(service ports.ResumeService, dispatcher NoticeDispatcher) *ResumeHandler {
	return &ResumeHandler{service: service, dispatcher: dispatcher}
}

// Create handles POST /resumes.
//
// @Summary      Submit a new resume
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createResumeRequest  true  "Resume details"
// @Success      201   {object}  domain.Resume
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /resumes [post]
func (h *ResumeHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createResumeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resume, err := h.service.Create(c.Request().Context(), ports.CreateResumeInput{
		AuthorID:     user.ID,
		AuthorName:   user.Name,
		Title:        req.Title,
		Introduction: req.Introduction,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resume)
}

// List handles GET /resumes. Applicants see their own resumes; recruiters see
// all of them.
//
// @Summary      List resumes
// @Tags         resumes
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        sort    query     string  false  "createdAt order: asc or desc"
// @Success      200     {array}   domain.Resume
// @Failure      401     {object}  errorResponse
// @Router       /resumes [get]
func (h *ResumeHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	resumes, err := h.service.List(c.Request().Context(), ports.ListResumesInput{
		ActorID: user.ID,
		Role:    user.Role,
		Status:  c.QueryParam("status"),
		Sort:    c.QueryParam("sort"),
	})
	if err != nil {
		return err
	}
	if resumes == nil {
		resumes = []*domain.Resume{}
	}
	return c.JSON(http.StatusOK, resumes)
}

// Get handles GET /resumes/:id.
//
// @Summary      Get a resume
// @Tags         resumes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resume id"
// @Success      200  {object}  domain.Resume
// @Failure      404  {object}  errorResponse
// @Router       /resumes/{id} [get]
func (h *ResumeHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	resume, err := h.service.Get(c.Request().Context(), user.ID, user.Role, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resume)
}

// Update handles PATCH /resumes/:id (owner only, partial).
//
// @Summary      Update own resume
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Resume id"
// @Param        body  body      updateResumeRequest  true  "Fields to update"
// @Success      200   {object}  domain.Resume
// @Failure      404   {object}  errorResponse
// @Router       /resumes/{id} [patch]
func (h *ResumeHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateResumeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Title == "" && req.Introduction == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	resume, err := h.service.Update(c.Request().Context(), ports.UpdateResumeInput{
		ActorID:      user.ID,
		ResumeID:     c.Param("id"),
		Title:        req.Title,
		Introduction: req.Introduction,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resume)
}

// Delete handles DELETE /resumes/:id (owner only).
//
// @Summary      Delete own resume
// @Tags         resumes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resume id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /resumes/{id} [delete]
func (h *ResumeHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"id": c.Param("id")})
}

// UpdateStatus handles PATCH /resumes/:id/status (recruiters only, enforced
// by the RBAC middleware).
//
// @Summary      Change a resume's status
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Resume id"
// @Param        body  body      updateStatusRequest  true  "New status and reason"
// @Success      200   {object}  statusLogResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /resumes/{id}/status [patch]
func (h *ResumeHandler) UpdateStatus(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.service.UpdateStatus(c.Request().Context(), ports.TransitionInput{
		ActorID:  user.ID,
		ResumeID: c.Param("id"),
		Status:   domain.ResumeStatus(req.Status),
		Reason:   req.Reason,
	})
	if err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(entry.OldStatus), string(entry.NewStatus)).Inc()
	h.dispatcher.Enqueue(ports.StatusNotice{
		ResumeID:    entry.ResumeID,
		RecruiterID: entry.RecruiterID,
		OldStatus:   string(entry.OldStatus),
		NewStatus:   string(entry.NewStatus),
		Reason:      entry.Reason,
		OccurredAt:  entry.CreatedAt,
	})

	return c.JSON(http.StatusOK, toLogResponse(entry))
}

// History handles GET /resumes/:id/logs.
//
// @Summary      Get a resume's status history
// @Tags         resumes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resume id"
// @Success      200  {array}   statusLogResponse
// @Failure      404  {object}  errorResponse
// @Router       /resumes/{id}/logs [get]
func (h *ResumeHandler) History(c echo.Context) error {
	if _, err := ctxUser(c); err != nil {
		return err
	}

	logs, err := h.service.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	out := make([]statusLogResponse, 0, len(logs))
	for _, entry := range logs {
		out = append(out, toLogResponse(entry))
	}
	return c.JSON(http.StatusOK, out)
}

func toLogResponse(entry *domain.ResumeStatusLog) statusLogResponse {
	return statusLogResponse{
		ID:          entry.ID,
		ResumeID:    entry.ResumeID,
		RecruiterID: entry.RecruiterID,
		OldStatus:   string(entry.OldStatus),
		NewStatus:   string(entry.NewStatus),
		Reason:      entry.Reason,
		CreatedAt:   entry.CreatedAt,
	}
}
