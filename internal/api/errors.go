// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/validation"
)

// IsCatalogUnavailable reports whether err means the catalog file could not
// be loaded at all.
func IsCatalogUnavailable(err error) bool {
	var parseErr *catalog.ParseError
	return errors.Is(err, catalog.ErrFileMissing) || errors.As(err, &parseErr)
}

// statusFor maps a service error to an HTTP status and API error code.
func statusFor(err error) (int, string) {
	var missing *catalog.MissingColumnError
	switch {
	case IsCatalogUnavailable(err):
		return http.StatusServiceUnavailable, ErrCodeCatalogUnavailable
	case errors.As(err, &missing):
		return http.StatusUnprocessableEntity, ErrCodeMissingColumn
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable
	default:
		return http.StatusInternalServerError, ErrCodeDatabaseError
	}
}

// writeServiceError writes err as an enveloped API error.
func writeServiceError(rw *ResponseWriter, err error) {
	status, code := statusFor(err)
	switch code {
	case ErrCodeDatabaseError:
		rw.DatabaseError(err)
	case ErrCodeMissingColumn:
		var missing *catalog.MissingColumnError
		errors.As(err, &missing)
		rw.ErrorWithDetails(status, code, err.Error(), map[string]string{"column": missing.Column})
	case ErrCodeServiceUnavailable:
		rw.ServiceUnavailable("Request timed out or was canceled")
	default:
		rw.Error(status, code, err.Error())
	}
}

// writeValidationError writes a 400 for a rejected request.
func writeValidationError(rw *ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	rw.ValidationError(apiErr.Message, apiErr.Details)
}
