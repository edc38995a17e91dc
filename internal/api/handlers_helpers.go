// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/filmgraph/internal/logging"
	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/recommend"
	"github.com/tomtom215/filmgraph/internal/validation"
)

// sanitizeLogValue escapes control characters so user input cannot forge log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with an ETag.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag hashes data with FNV-1a.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}, start time.Time, cached bool) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			RequestID:   logging.RequestIDFromContext(r.Context()),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      cached,
		},
	})
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", sanitizeLogValue(apiErr.Code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
		Error: apiErr,
	})
}

// respondEngineError maps a recommendation failure to a status code.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrInvalidArgument):
		respondError(w, r, http.StatusBadRequest, &models.APIError{
			Code:    "INVALID_ARGUMENT",
			Message: err.Error(),
		}, nil)
	case errors.Is(err, recommend.ErrGraphTooLarge):
		respondError(w, r, http.StatusServiceUnavailable, &models.APIError{
			Code:    "GRAPH_TOO_LARGE",
			Message: "preference graph exceeds the configured size limit",
		}, err)
	case errors.Is(err, recommend.ErrFetch):
		respondError(w, r, http.StatusBadGateway, &models.APIError{
			Code:    "UPSTREAM_ERROR",
			Message: "failed to read records from the data store",
		}, err)
	default:
		respondError(w, r, http.StatusInternalServerError, &models.APIError{
			Code:    "INTERNAL_ERROR",
			Message: "failed to compute recommendations",
		}, err)
	}
}

// validateRequest validates a query parameter struct. It returns nil when
// the struct is valid.
func validateRequest(req interface{}) *models.APIError {
	if verr := validation.ValidateStruct(req); verr != nil {
		return verr.ToAPIError()
	}
	return nil
}

// paramError reports a query or path parameter that is not an integer.
type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("%s must be an integer, got %q", e.name, e.value)
}

func (e *paramError) apiError() *models.APIError {
	return &models.APIError{
		Code:    "VALIDATION_ERROR",
		Message: e.Error(),
		Details: map[string]interface{}{"field": e.name},
	}
}

// intQueryParam reads an integer query parameter, returning def when absent.
func intQueryParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{name: name, value: raw}
	}
	return v, nil
}

// userIDParam reads the {userID} path parameter.
func userIDParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "userID")
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{name: "user_id", value: raw}
	}
	return v, nil
}

// respondParamError sends a 400 for a parse failure from intQueryParam or userIDParam.
func respondParamError(w http.ResponseWriter, r *http.Request, err error) {
	var pe *paramError
	if errors.As(err, &pe) {
		respondError(w, r, http.StatusBadRequest, pe.apiError(), nil)
		return
	}
	respondError(w, r, http.StatusBadRequest, &models.APIError{
		Code:    "VALIDATION_ERROR",
		Message: err.Error(),
	}, nil)
}
