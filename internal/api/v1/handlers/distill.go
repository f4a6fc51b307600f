package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"briefly/internal/api/errors"
	"briefly/internal/api/middleware"
	"briefly/internal/api/v1/dto"
	"briefly/internal/api/v1/services"
	"briefly/internal/app/docparse"
	apperrors "briefly/internal/app/errors"
)

// DistillHandler handles the chat, document and call endpoints
type DistillHandler struct {
	service        services.DistillService
	maxUploadBytes int64
	requestTimeout time.Duration
}

// NewDistillHandler creates a new distill handler. requestTimeout bounds a
// whole request including every fallback attempt; zero disables it.
func NewDistillHandler(service services.DistillService, maxUploadBytes int64, requestTimeout time.Duration) *DistillHandler {
	return &DistillHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		requestTimeout: requestTimeout,
	}
}

// ProcessChat handles POST /api/process-chat
func (h *DistillHandler) ProcessChat(c *gin.Context) {
	var req dto.ProcessChatRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.service.ProcessChat(ctx, req.Text)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDistillationResponse(result))
}

// ProcessFile handles POST /api/process-file with a multipart "file"
func (h *DistillHandler) ProcessFile(c *gin.Context) {
	file, err := readUpload(c, "file", h.maxUploadBytes, docparse.IsAllowedDocument)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	text, err := docparse.ExtractText(file.Name, file.Data)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUnsupportedDocument) {
			middleware.HandleError(c, err)
			return
		}
		middleware.HandleError(c, errors.NewBadRequestError("Could not read "+file.Name))
		return
	}
	if strings.TrimSpace(text) == "" {
		middleware.HandleError(c, apperrors.ErrNoTextExtracted)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.service.ProcessFile(ctx, text, file.Name)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDistillationResponse(result))
}

// ProcessCall handles POST /api/process-call with a multipart "audio"
func (h *DistillHandler) ProcessCall(c *gin.Context) {
	file, err := readUpload(c, "audio", h.maxUploadBytes, docparse.IsAllowedAudio)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	if len(file.Data) == 0 {
		middleware.HandleError(c, apperrors.ErrEmptyContent)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.service.ProcessCall(ctx, file.Data, docparse.MimeForAudio(file.Name), file.Name)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDistillationResponse(result))
}

// Health handles GET /api/health. It never contacts a provider.
func (h *DistillHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Health())
}

func (h *DistillHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.requestTimeout)
}
