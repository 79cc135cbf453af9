package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"googletrans-local/domain"
	"googletrans-local/service"
)

type TranslateHandler struct {
	service service.TranslateService
	logger  *zap.Logger
}

func NewTranslateHandler(service service.TranslateService, logger *zap.Logger) *TranslateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranslateHandler{service: service, logger: logger}
}

func (h *TranslateHandler) Translate(c *gin.Context) {
	var request domain.TranslateRequest
	if err := bindStrict(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.service.Translate(c.Request.Context(), request)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TranslateHandler) TranslateBatch(c *gin.Context) {
	var request domain.BatchTranslateRequest
	if err := bindStrict(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	itemReq := domain.TranslateRequest{
		SourceLang: request.SourceLang,
		TargetLang: request.TargetLang,
		Proxy:      request.Proxy,
	}
	results, err := h.service.TranslateBatch(c.Request.Context(), request.Texts, itemReq)
	if err != nil {
		// Completed items ride along so the caller keeps what worked.
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "results": results})
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *TranslateHandler) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/translate", h.Translate)
	engine.POST("/translate/batch", h.TranslateBatch)
}

func (h *TranslateHandler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Warn("translate failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var langErr *domain.LanguageError
	var optErr *domain.OptionError
	var transportErr *domain.TransportError
	var decodeErr *domain.DecodeError
	switch {
	case errors.As(err, &langErr), errors.As(err, &optErr):
		return http.StatusBadRequest
	case errors.As(err, &transportErr), errors.As(err, &decodeErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// bindStrict decodes the body rejecting unknown fields, so a mistyped
// option comes back as an error instead of being silently dropped.
func bindStrict(c *gin.Context, dst any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if name, found := strings.CutPrefix(err.Error(), "json: unknown field "); found {
			return &domain.OptionError{Name: strings.Trim(name, `"`)}
		}
		return err
	}
	return nil
}
