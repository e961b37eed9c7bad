package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"advogadovirtual/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func TestHandleErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: fmt.Errorf("%w: bad payload", domain.ErrValidation), wantStatus: http.StatusBadRequest},
		{name: "template not found", err: fmt.Errorf("comando x: %w", domain.ErrTemplateNotFound), wantStatus: http.StatusBadRequest},
		{name: "not found", err: domain.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "unauthorized", err: domain.ErrUnauthorized, wantStatus: http.StatusUnauthorized},
		{name: "forbidden", err: fmt.Errorf("papel secretaria: %w", domain.ErrForbidden), wantStatus: http.StatusForbidden},
		{name: "upstream", err: fmt.Errorf("%w: api timeout", domain.ErrUpstream), wantStatus: http.StatusInternalServerError},
		{name: "malformed output", err: domain.ErrMalformedModelOutput, wantStatus: http.StatusInternalServerError},
		{name: "missing credentials", err: domain.ErrMissingCredentials, wantStatus: http.StatusInternalServerError},
		{name: "unknown error", err: errors.New("driver exploded"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if body.Error == "" {
				t.Error("error body missing message")
			}
		})
	}
}

func TestHandleErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	handleError(rec, errors.New("pq: connection refused at 10.0.0.5"))

	if got := rec.Body.String(); got != `{"error":"internal server error"}` {
		t.Errorf("internal detail leaked: %s", got)
	}
}

func TestHandleErrorValidationFields(t *testing.T) {
	fieldErrs := validation.Errors{
		"cliente_id": errors.New("must be a valid UUID"),
		"area":       errors.New("cannot be blank"),
	}
	err := fmt.Errorf("%w: %w", domain.ErrValidation, fieldErrs)

	rec := httptest.NewRecorder()
	handleError(rec, err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Fields["cliente_id"] != "must be a valid UUID" {
		t.Errorf("fields = %v", body.Fields)
	}
	if body.Fields["area"] != "cannot be blank" {
		t.Errorf("fields = %v", body.Fields)
	}
}
