package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxBodySize limits JSON request bodies.
const DefaultMaxBodySize int64 = 1 << 20

// BindJSON decodes an application/json body into v in strict mode: unknown
// fields and trailing data are rejected.
//
// Example:
//
//	http.HandleFunc("/users/login", handler.Wrap(login,
//		handler.WithBinders[LoginRequest](binder.BindJSON()),
//	))
func BindJSON() func(r *http.Request, v any) error {
	return BindJSONWithLimit(DefaultMaxBodySize)
}

// BindJSONWithLimit is BindJSON with a custom body size limit in bytes.
func BindJSONWithLimit(limit int64) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}

		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, contentType)
		}

		// A nil ResponseWriter only skips the connection-close hint.
		decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, limit))
		decoder.DisallowUnknownFields()

		var tooLarge *http.MaxBytesError
		if err := decoder.Decode(v); err != nil {
			switch {
			case errors.As(err, &tooLarge):
				return ErrBodyTooLarge
			case errors.Is(err, io.EOF):
				return fmt.Errorf("%w: empty body", ErrInvalidJSON)
			}
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}

		// Ensure entire body was consumed
		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			if errors.As(err, &tooLarge) {
				return ErrBodyTooLarge
			}
			return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
		}

		return nil
	}
}
