package handler

import (
	"errors"
	"net/http"

	"advogadovirtual/internal/domain"
	"advogadovirtual/internal/httputil"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondValidationError(w, "validation failed", validationFields(err))
	case errors.Is(err, domain.ErrTemplateNotFound):
		// Unknown comando or (area, tipo) combination is a client
		// mistake, not a missing resource.
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrUpstream),
		errors.Is(err, domain.ErrMalformedModelOutput),
		errors.Is(err, domain.ErrMissingCredentials):
		httputil.RespondError(w, http.StatusInternalServerError, "text generation unavailable")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// validationFields flattens ozzo field errors into a field → message
// map. Non-struct validation errors yield a nil map and the generic
// message alone.
func validationFields(err error) map[string]string {
	var ozzoErrs validation.Errors
	if !errors.As(err, &ozzoErrs) {
		return nil
	}

	fields := make(map[string]string, len(ozzoErrs))
	for field, fieldErr := range ozzoErrs {
		fields[field] = fieldErr.Error()
	}
	return fields
}
