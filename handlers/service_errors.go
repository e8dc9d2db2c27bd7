package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/upb/llm-router/services"
	"github.com/upb/llm-router/utils"
)

// HandleServiceError maps domain errors to HTTP responses.
// The body is {"error": kind, "message", "details"}; details always carry the kind.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	kind := string(services.GetErrorType(err))
	details := services.GetErrorDetails(err)

	var status int
	message := errorMessage(err)

	switch {
	case services.IsValidationError(err):
		status = http.StatusBadRequest

	case services.IsUpstreamError(err), services.IsAuthError(err):
		// The backend, not the caller, failed or refused the call
		status = http.StatusBadGateway
		logger.Warn("backend call failed",
			zap.String("kind", kind),
			zap.Any("details", details),
			zap.Error(err))

	case services.IsTimeoutError(err):
		status = http.StatusGatewayTimeout
		logger.Warn("backend call timed out",
			zap.Any("details", details),
			zap.Error(err))

	case services.IsUnknownProviderError(err), services.IsConfigError(err), services.IsInternalError(err):
		status = http.StatusInternalServerError
		logger.Error("internal server error",
			zap.String("kind", kind),
			zap.Error(err))

	default:
		// Unknown error type - log and return internal error
		logger.Error("unhandled error type", zap.Error(err))
		kind = string(services.ErrorTypeInternal)
		status = http.StatusInternalServerError
		message = "An unexpected error occurred"
		details = map[string]interface{}{services.DetailKind: kind}
	}

	if err := utils.WriteError(w, status, kind, message, details); err != nil {
		logger.Error("failed to write error response", zap.Error(err))
	}
}

// errorMessage returns the caller-facing message of a domain error without its wrapped cause
func errorMessage(err error) string {
	var domainErr *services.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}

// HandleValidationError handles validation errors from request parsing
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	details := map[string]interface{}{services.DetailKind: string(services.ErrorTypeValidation)}

	if utils.IsValidationError(err) {
		for k, v := range utils.GetValidationFields(err) {
			details[k] = v
		}
		if err := utils.WriteBadRequest(w, "Validation failed", details); err != nil {
			logger.Error("failed to write validation error response", zap.Error(err))
		}
		return
	}

	// Generic validation error
	if err := utils.WriteBadRequest(w, err.Error(), details); err != nil {
		logger.Error("failed to write validation error response", zap.Error(err))
	}
}
