package ai

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/studyaid/core/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	msgFileIDRequired = "File ID is required"
	msgFileNotFound   = "File not found"
	msgSummaryFailed  = "Failed to generate AI summary"
	msgQuizFailed     = "Failed to generate quiz"
)

type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the study-aid endpoints under the /files group.
// The id-less variants exist so a missing id gets a 400 instead of a 404.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/files")
	g.GET("/summary", h.getSummary)
	g.GET("/summary/:id", h.getSummary)
	g.GET("/quiz", h.getQuiz)
	g.GET("/quiz/:id", h.getQuiz)
}

// GET /files/summary/:id
func (h *Handler) getSummary(c *gin.Context) {
	result, err := h.svc.Summarize(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, msgSummaryFailed)
		return
	}
	response.OK(c, result)
}

// GET /files/quiz/:id
func (h *Handler) getQuiz(c *gin.Context) {
	result, err := h.svc.Quiz(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, msgQuizFailed)
		return
	}
	response.OK(c, result)
}

func (h *Handler) fail(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrFileIDRequired):
		response.BadRequest(c, msgFileIDRequired)
	case errors.Is(err, ErrFileNotFound):
		response.NotFoundMsg(c, msgFileNotFound)
	default:
		fields := []zap.Field{zap.String("path", c.Request.URL.Path), zap.Error(err)}
		var upstream *UpstreamError
		if errors.As(err, &upstream) {
			fields = append(fields,
				zap.String("provider", upstream.Provider),
				zap.Int("upstream_status", upstream.StatusCode),
				zap.String("upstream_body", upstream.Body),
			)
		}
		h.logger.Error(message, fields...)
		response.Failure(c, message, err)
	}
}
