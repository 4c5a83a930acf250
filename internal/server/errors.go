package server

import (
	"errors"
	"net/http"

	"pdf-rag/internal/parser"
	"pdf-rag/internal/rag"
)

// statusFor maps pipeline errors to HTTP status codes. Anything unrecognised
// is treated as a failed remote call.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, rag.ErrNoIndex):
		return http.StatusConflict
	case errors.Is(err, rag.ErrNoDocuments),
		errors.Is(err, rag.ErrEmptyQuestion),
		errors.Is(err, errBadUpload),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, errUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, parser.ErrNotPDF),
		errors.Is(err, parser.ErrExtraction),
		errors.Is(err, parser.ErrEmptyUpload),
		errors.Is(err, rag.ErrNoText):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
