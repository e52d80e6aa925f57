package jobs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careers-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches the candidate-facing job routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.publicList)
	rg.GET("/jobs/:slug", h.publicGet)
}

// RegisterAdminRoutes attaches job, question, and option routes to the admin
// router group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.createJob)
	rg.GET("/jobs", h.listJobs)
	rg.GET("/jobs/:id", h.getJob)
	rg.PUT("/jobs/:id", h.updateJob)
	rg.PATCH("/jobs/:id/status", h.setJobStatus)
	rg.DELETE("/jobs/:id", h.deleteJob)

	rg.POST("/jobs/:id/questions", h.createQuestion)
	rg.PUT("/questions/:id", h.updateQuestion)
	rg.DELETE("/questions/:id", h.deleteQuestion)

	rg.POST("/questions/:id/options", h.createOption)
	rg.PUT("/questions/:id/options/reorder", h.reorderOptions)
	rg.PUT("/options/:id", h.updateOption)
	rg.PATCH("/options/:id/status", h.setOptionStatus)
	rg.DELETE("/options/:id", h.deleteOption)
}

func (h *Handler) publicList(c *gin.Context) {
	out, err := h.Svc.ListActiveJobs(c.Request.Context())
	if err != nil {
		respond.Fail(c, http.StatusInternalServerError, "internal_error", "could not list jobs")
		return
	}
	resp := make([]JobSummary, 0, len(out))
	for _, job := range out {
		resp = append(resp, toJobSummary(job))
	}
	respond.Success(c, http.StatusOK, resp)
}

func (h *Handler) publicGet(c *gin.Context) {
	job, err := h.Svc.GetActiveJob(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Fail(c, http.StatusNotFound, "not_found", "job not found")
			return
		}
		respond.Fail(c, http.StatusInternalServerError, "internal_error", "could not load job")
		return
	}
	respond.Success(c, http.StatusOK, toJobResponse(job))
}

type jobRequest struct {
	PositionID     string `json:"positionId"`
	Slug           string `json:"slug" binding:"required"`
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	RequiresResume bool   `json:"requiresResume"`
}

func (h *Handler) createJob(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	job, err := h.Svc.CreateJob(c.Request.Context(), CreateJobInput{
		PositionID:     req.PositionID,
		Slug:           req.Slug,
		Title:          req.Title,
		Description:    req.Description,
		RequiresResume: req.RequiresResume,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, toJobResponse(job))
}

func (h *Handler) listJobs(c *gin.Context) {
	out, err := h.Svc.ListJobs(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := make([]JobResponse, 0, len(out))
	for _, job := range out {
		resp = append(resp, toJobResponse(job))
	}
	respond.OK(c, resp)
}

func (h *Handler) getJob(c *gin.Context) {
	job, err := h.Svc.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, toJobResponse(job))
}

func (h *Handler) updateJob(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	job, err := h.Svc.UpdateJob(c.Request.Context(), c.Param("id"), UpdateJobInput{
		Slug:           req.Slug,
		Title:          req.Title,
		Description:    req.Description,
		RequiresResume: req.RequiresResume,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, toJobResponse(job))
}

type statusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func (h *Handler) setJobStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := h.Svc.SetJobActive(c.Request.Context(), c.Param("id"), *req.IsActive); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteJob(c *gin.Context) {
	if err := h.Svc.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type questionRequest struct {
	Label      string `json:"label" binding:"required"`
	Type       string `json:"type"`
	IsRequired bool   `json:"isRequired"`
	IsActive   *bool  `json:"isActive"`
	Order      int    `json:"order"`
}

func (h *Handler) createQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	q, err := h.Svc.CreateQuestion(c.Request.Context(), c.Param("id"), CreateQuestionInput{
		Label:      req.Label,
		Type:       QuestionType(req.Type),
		IsRequired: req.IsRequired,
		Order:      req.Order,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, toQuestionResponse(q))
}

func (h *Handler) updateQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	q, err := h.Svc.UpdateQuestion(c.Request.Context(), c.Param("id"), UpdateQuestionInput{
		Label:      req.Label,
		IsRequired: req.IsRequired,
		IsActive:   active,
		Order:      req.Order,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, toQuestionResponse(q))
}

func (h *Handler) deleteQuestion(c *gin.Context) {
	if err := h.Svc.DeleteQuestion(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteOption(c *gin.Context) {
	if err := h.Svc.DeleteOption(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type optionRequest struct {
	Label      string `json:"label" binding:"required"`
	OrderIndex int    `json:"orderIndex"`
}

func (h *Handler) createOption(c *gin.Context) {
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	opt, err := h.Svc.CreateOption(c.Request.Context(), c.Param("id"), req.Label, req.OrderIndex)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, OptionResponse{
		ID:         opt.ID,
		Label:      opt.Label,
		OrderIndex: opt.OrderIndex,
		IsActive:   opt.IsActive,
	})
}

func (h *Handler) updateOption(c *gin.Context) {
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := h.Svc.UpdateOption(c.Request.Context(), c.Param("id"), req.Label); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) setOptionStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := h.Svc.SetOptionActive(c.Request.Context(), c.Param("id"), *req.IsActive); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type reorderRequest struct {
	OptionIDs []string `json:"optionIds" binding:"required"`
}

func (h *Handler) reorderOptions(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := h.Svc.ReorderOptions(c.Request.Context(), c.Param("id"), req.OptionIDs); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resource not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrPositionMissing):
		respond.Error(c, http.StatusBadRequest, "validation_error", "position does not exist", nil)
	case errors.Is(err, ErrSlugTaken):
		respond.Error(c, http.StatusConflict, "conflict", "slug already in use", nil)
	case errors.Is(err, ErrOrderTaken):
		respond.Error(c, http.StatusConflict, "conflict", "order already in use", nil)
	case errors.Is(err, ErrOptionInUse):
		respond.Error(c, http.StatusConflict, "conflict", "option is referenced by submitted answers", nil)
	case errors.Is(err, ErrQuestionInUse):
		respond.Error(c, http.StatusConflict, "conflict", "question has submitted answers", nil)
	case errors.Is(err, ErrJobInUse):
		respond.Error(c, http.StatusConflict, "conflict", "job has submitted applications", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "job operation failed", nil)
	}
}
