package handlers

import (
	_ "embed"
	"net/http"

	"go.uber.org/zap"
)

//go:embed openapi.json
var openapiSpec []byte

// DocsHandler serves the API documentation
type DocsHandler struct {
	logger *zap.Logger
}

// NewDocsHandler creates a new DocsHandler
func NewDocsHandler(logger *zap.Logger) *DocsHandler {
	return &DocsHandler{logger: logger}
}

// HandleOpenAPI handles GET /docs/openapi.json
func (h *DocsHandler) HandleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(openapiSpec); err != nil {
		h.logger.Error("failed to write openapi document", zap.Error(err))
	}
}
