package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/stylehub/storefront/pkg/errors"
)

// maxErrorBody caps how much of a downstream error body we read. Error
// payloads past this size are almost certainly not the structured envelope.
const maxErrorBody = 1 << 20

// DownstreamErrorResponse mirrors the httputil.ErrorResponse envelope
// returned by storefront services, for decoding error bodies from
// downstream HTTP calls.
type DownstreamErrorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError consumes the body of a non-2xx response and translates
// it into an error. Structured envelope bodies keep their code and message;
// anything else becomes a generic error carrying the status and raw body.
// The response body is fully read and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	var downstream DownstreamErrorResponse
	if json.Unmarshal(bodyBytes, &downstream) == nil && downstream.Error != nil {
		return mapDownstreamError(resp.StatusCode, downstream.Error.Code, downstream.Error.Message, serviceName)
	}

	return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, string(bodyBytes))
}

// mapDownstreamError translates a downstream status and error code into an
// AppError so callers can match with errors.Is the same way they match
// locally produced errors.
func mapDownstreamError(status int, code, message, serviceName string) error {
	qualifiedMsg := fmt.Sprintf("%s: %s", serviceName, message)

	switch status {
	case http.StatusNotFound:
		return apperrors.NotFound(serviceName, message)
	case http.StatusBadRequest:
		return apperrors.InvalidInput(qualifiedMsg)
	case http.StatusConflict:
		return apperrors.Conflict(qualifiedMsg)
	case http.StatusUnauthorized:
		return apperrors.Unauthorized(qualifiedMsg)
	case http.StatusForbidden:
		return apperrors.Forbidden(qualifiedMsg)
	case http.StatusGone:
		return apperrors.Gone(qualifiedMsg)
	case http.StatusServiceUnavailable:
		return &apperrors.AppError{
			Code:    code,
			Message: qualifiedMsg,
			Status:  http.StatusServiceUnavailable,
			Err:     apperrors.ErrServiceUnavail,
		}
	}

	if status >= 500 {
		return fmt.Errorf("%s server error (%d/%s): %s", serviceName, status, code, message)
	}

	// Unmapped 4xx: keep the downstream code and status as-is.
	return &apperrors.AppError{
		Code:    code,
		Message: qualifiedMsg,
		Status:  status,
	}
}

// IsClientError reports whether status is a 4xx client error. Client errors
// are not worth retrying: the request itself was invalid.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
