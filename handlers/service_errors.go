package handlers

import (
	"net/http"

	"github.com/upb/employee-api/services"
	"github.com/upb/employee-api/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses.
//
// Credential and token failures deliberately collapse to fixed messages so
// the response body never reveals which check failed.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	switch {
	case services.IsInvalidCredentialsError(err):
		if err := utils.WriteUnauthorized(w, "Invalid username or password"); err != nil {
			logger.Error("failed to write unauthorized response", zap.Error(err))
		}

	case services.IsUnauthorizedError(err):
		if err := utils.WriteUnauthorized(w, "Invalid or expired token"); err != nil {
			logger.Error("failed to write unauthorized response", zap.Error(err))
		}

	case services.IsForbiddenError(err):
		if err := utils.WriteForbidden(w, err.Error()); err != nil {
			logger.Error("failed to write forbidden response", zap.Error(err))
		}

	case services.IsNotFoundError(err):
		if err := utils.WriteNotFound(w, err.Error()); err != nil {
			logger.Error("failed to write not found response", zap.Error(err))
		}

	case services.IsValidationError(err):
		if err := utils.WriteBadRequest(w, err.Error(), nil); err != nil {
			logger.Error("failed to write bad request response", zap.Error(err))
		}

	case services.IsConflictError(err):
		if err := utils.WriteConflict(w, err.Error()); err != nil {
			logger.Error("failed to write conflict response", zap.Error(err))
		}

	case services.IsInternalError(err):
		// Log internal errors but return a generic message
		logger.Error("internal server error", zap.Error(err))
		if err := utils.WriteInternalServerError(w, "An internal error occurred"); err != nil {
			logger.Error("failed to write internal error response", zap.Error(err))
		}

	default:
		logger.Error("unhandled service error", zap.Error(err))
		if err := utils.WriteInternalServerError(w, "An internal error occurred"); err != nil {
			logger.Error("failed to write internal error response", zap.Error(err))
		}
	}
}

// HandleValidationError writes a 400 response with per-field details
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	details := make(map[string]interface{})
	for field, msg := range utils.GetValidationFields(err) {
		details[field] = msg
	}
	if writeErr := utils.WriteBadRequest(w, err.Error(), details); writeErr != nil {
		logger.Error("failed to write validation error response", zap.Error(writeErr))
	}
}
