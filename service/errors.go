package service

import (
	"net/http"
	"strings"

	"flyer/storage"

	"github.com/pkg/errors"
)

var (
	ErrInvalidInput             = errors.New("invalid input")
	ErrTemplateNotFound         = errors.New("template not found")
	ErrUpstreamGenerationFailed = errors.New("upstream generation failed")
)

// StatusFor maps an error kind to the HTTP status reported to clients.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrTemplateNotFound), errors.Is(err, storage.ErrFlyerNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrUnknownSlot), errors.Is(err, storage.ErrInvalidFontSize):
		return http.StatusBadRequest
	case errors.Is(err, ErrUpstreamGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text for an error kind.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return detail(err)
	case errors.Is(err, ErrTemplateNotFound):
		return "Template not found"
	case errors.Is(err, storage.ErrFlyerNotFound):
		return "Flyer not found"
	case errors.Is(err, storage.ErrUnknownSlot), errors.Is(err, storage.ErrInvalidFontSize):
		return err.Error()
	case errors.Is(err, ErrUpstreamGenerationFailed):
		return "Failed to generate flyer content"
	default:
		return "Internal server error"
	}
}

// detail strips the kind suffix from a wrapped message, leaving the context
// added at the failure site.
func detail(err error) string {
	return strings.TrimSuffix(err.Error(), ": "+errors.Cause(err).Error())
}
