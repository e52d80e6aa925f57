package applications

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"careers-backend/internal/shared/i18n"
	"careers-backend/internal/shared/server/middleware"
	"careers-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
	T   *i18n.Translator
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, translator *i18n.Translator) *Handler {
	return &Handler{Svc: svc, T: translator}
}

// RegisterPublicRoutes attaches the candidate-facing submission route.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications/submit/:slug", h.submit)
}

// RegisterAdminRoutes attaches application review routes to the admin group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs/:id/applications", h.listByJob)
	rg.GET("/applications/:id", h.get)
}

type submitBody struct {
	Answers        AnswerInput `json:"answers"`
	RecaptchaToken string      `json:"recaptchaToken"`
}

func (h *Handler) submit(c *gin.Context) {
	lang := c.GetHeader("Accept-Language")
	c.Set("jobId", c.Param("slug"))

	req := SubmitRequest{
		SlugOrID:  c.Param("slug"),
		RequestID: middleware.RequestIDFromContext(c),
	}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var ok bool
		req.Answers, req.Resume, ok = h.parseMultipart(c, lang)
		if !ok {
			return
		}
		if req.Resume != nil {
			if closer, isCloser := req.Resume.Reader.(io.Closer); isCloser {
				defer closer.Close()
			}
		}
	} else {
		var body submitBody
		if err := c.ShouldBindJSON(&body); err != nil {
			respond.Fail(c, http.StatusBadRequest, "invalid_request",
				h.T.Translate(lang, "error.invalid_request", nil))
			return
		}
		req.Answers = body.Answers
	}

	app, err := h.Svc.Submit(c.Request.Context(), req)
	if err != nil {
		h.writeSubmitError(c, lang, err)
		return
	}

	c.Set("applicationId", app.ID)
	respond.Success(c, http.StatusCreated,
		toSubmitResponse(app, h.T.Translate(lang, "application.submitted", nil)))
}

// parseMultipart pulls the answers JSON and optional resume out of a
// multipart body. It writes the error response itself and reports ok=false.
func (h *Handler) parseMultipart(c *gin.Context, lang string) (AnswerInput, *ResumeFile, bool) {
	var input AnswerInput
	raw := c.PostForm("answers")
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &input); err != nil {
			respond.Fail(c, http.StatusBadRequest, "invalid_request",
				h.T.Translate(lang, "error.invalid_request", nil))
			return AnswerInput{}, nil, false
		}
	}

	header, err := c.FormFile("resume")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return input, nil, true
		}
		respond.Fail(c, http.StatusBadRequest, "invalid_request",
			h.T.Translate(lang, "error.invalid_request", nil))
		return AnswerInput{}, nil, false
	}

	f, err := header.Open()
	if err != nil {
		respond.Fail(c, http.StatusInternalServerError, "internal_error",
			h.T.Translate(lang, "error.internal", nil))
		return AnswerInput{}, nil, false
	}

	return input, &ResumeFile{
		FileName: header.Filename,
		Size:     header.Size,
		Reader:   f,
	}, true
}

func (h *Handler) writeSubmitError(c *gin.Context, lang string, err error) {
	var reqErr *RequiredQuestionError
	switch {
	case errors.Is(err, ErrJobNotFound):
		respond.Fail(c, http.StatusNotFound, "job_not_found",
			h.T.Translate(lang, "error.job_not_found", nil))
	case errors.As(err, &reqErr):
		respond.Fail(c, http.StatusBadRequest, "required_question_missing",
			h.T.Translate(lang, "error.required_question_missing", map[string]string{"label": reqErr.Label}))
	case errors.Is(err, ErrInvalidAnswerFormat):
		respond.Fail(c, http.StatusBadRequest, "invalid_answer_format",
			h.T.Translate(lang, "error.invalid_answer_format", nil))
	case errors.Is(err, ErrResumeRequired):
		respond.Fail(c, http.StatusBadRequest, "resume_required",
			h.T.Translate(lang, "error.resume_required", nil))
	case errors.Is(err, ErrInvalidFileType):
		respond.Fail(c, http.StatusBadRequest, "invalid_file_type",
			h.T.Translate(lang, "error.invalid_file_type", nil))
	case errors.Is(err, ErrFileTooLarge):
		respond.Fail(c, http.StatusBadRequest, "file_too_large",
			h.T.Translate(lang, "error.file_too_large", nil))
	default:
		respond.Fail(c, http.StatusInternalServerError, "internal_error",
			h.T.Translate(lang, "error.internal", nil))
	}
}

func (h *Handler) listByJob(c *gin.Context) {
	out, err := h.Svc.ListByJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeAdminError(c, err)
		return
	}
	resp := make([]ApplicationResponse, 0, len(out))
	for _, app := range out {
		resp = append(resp, toApplicationResponse(app, false))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	app, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeAdminError(c, err)
		return
	}
	respond.OK(c, toApplicationResponse(app, true))
}

func (h *Handler) writeAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "application operation failed", nil)
	}
}
