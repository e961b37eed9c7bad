package domain

import "errors"

// Sentinel errors for the whole pipeline - use with errors.Is().
// Handlers map these to HTTP status codes; services and repositories
// wrap them with %w and context.
var (
	// ErrNotFound covers both "row does not exist" and cross-tenant misses.
	// The two are intentionally indistinguishable so an authenticated user
	// cannot probe for ids belonging to another escritório.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates an invalid request payload.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates a missing or invalid session token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrUpstream indicates a failure in an external collaborator
	// (model API, export renderer, storage).
	ErrUpstream = errors.New("upstream failure")

	// ErrMalformedModelOutput indicates the model returned text from which
	// no conforming JSON object could be extracted. Recoverable by retry;
	// never coerced into a default value.
	ErrMalformedModelOutput = errors.New("malformed model output")

	// ErrMissingCredentials indicates the completion API key is absent.
	// Raised on first gateway use, not at process start, so routes that
	// never touch the model stay usable without credentials.
	ErrMissingCredentials = errors.New("missing completion API credentials")

	// ErrTemplateNotFound indicates an unknown (area, tipo) or comando key.
	// Always detected before any external API call is attempted.
	ErrTemplateNotFound = errors.New("prompt template not found")
)
