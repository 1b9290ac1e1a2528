// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"keywords-app-api/core/errors"

	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsConfiguration(err) {
		return huma.Error503ServiceUnavailable("Source not configured", err)
	}

	if upstreamErr, ok := errors.AsUpstream(err); ok {
		switch {
		case upstreamErr.StatusCode == 429:
			return huma.Error429TooManyRequests("Rate limited by " + upstreamErr.Source)
		case upstreamErr.StatusCode >= 500:
			return huma.Error503ServiceUnavailable("Upstream service error", err)
		default:
			return huma.Error502BadGateway("Upstream request failed", err)
		}
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
