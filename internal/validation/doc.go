// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Field names in error messages come
// from the `query`, `koanf` or `json` tag, in that order, so messages name the
// parameter a client or operator actually set.
//
// Example:
//
//	type recommendParams struct {
//	    UserID int `query:"user_id" validate:"gt=0"`
//	    K      int `query:"k" validate:"gte=0,lte=100"`
//	}
//
//	if verr := validation.ValidateStruct(&params); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
