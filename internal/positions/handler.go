package positions

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

// RegisterAdminRoutes attaches position routes to the admin router group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/positions", h.create)
	rg.GET("/positions", h.list)
	rg.GET("/positions/:id", h.get)
	rg.PUT("/positions/:id", h.update)
	rg.DELETE("/positions/:id", h.remove)
}

type positionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) create(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	pos, err := h.Svc.Create(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(pos))
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := make([]gin.H, 0, len(out))
	for _, pos := range out {
		resp = append(resp, toResponse(pos))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	pos, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, toResponse(pos))
}

func (h *Handler) update(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	pos, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Title, req.Description)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, toResponse(pos))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "position not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrHasJobs):
		respond.Error(c, http.StatusConflict, "conflict", "position still has jobs", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "position operation failed", nil)
	}
}

func toResponse(pos Position) gin.H {
	return gin.H{
		"id":          pos.ID,
		"title":       pos.Title,
		"description": pos.Description,
		"createdAt":   pos.CreatedAt,
		"updatedAt":   pos.UpdatedAt,
	}
}
