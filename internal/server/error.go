package server

import (
	"errors"
	"lsbmark/api"
	"lsbmark/pkg/watermark"
	"net/http"
)

var (
	errRequestBodyDecode   = api.Error{Code: "invalid_body", Error: "Error reading request body"}
	errInvalidImage        = api.Error{Code: "invalid_image", Error: "Invalid image supplied in request body"}
	errInvalidConfig       = api.Error{Code: "invalid_config", Error: "Invalid encoding configuration supplied in request body"}
	errCapacityExceeded    = api.Error{Code: "capacity_exceeded", Error: "Text is too long to be hidden in the supplied image"}
	errInvalidText         = api.Error{Code: "invalid_text", Error: "Text contains characters outside the single byte range"}
	errEncode              = api.Error{Code: "encode_error", Error: "An error occurred while encoding the image"}
	errMalformedFlatbuffer = errors.New("malformed flatbuffers request")
)

// encodeErrorResponse maps codec failures onto the status and body returned to the client
func encodeErrorResponse(err error) (int, api.Error) {
	switch {
	case errors.Is(err, watermark.ErrCapacity):
		body := errCapacityExceeded
		var capacityErr *watermark.CapacityError
		if errors.As(err, &capacityErr) {
			body.Error = capacityErr.Error()
		}
		return http.StatusUnprocessableEntity, body
	case errors.Is(err, watermark.ErrEncoding):
		return http.StatusBadRequest, errInvalidText
	case errors.Is(err, watermark.ErrInput):
		return http.StatusBadRequest, errInvalidImage
	default:
		return http.StatusInternalServerError, errEncode
	}
}
