package middleware

import (
	"net/http"

	"github.com/philly/member-admin/internal/platform/result"
)

// WriteError writes err as an error envelope. The body format matches the
// one handlers produce, so clients see a single shape for every failure.
func WriteError(w http.ResponseWriter, err error) {
	// Ignore encoding errors here as we're already in error handling
	_ = result.Write(w, result.FromError[any](err))
}
