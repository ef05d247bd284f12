// Package binder turns HTTP requests into typed request structs for
// handler.Wrap.
//
//   - BindJSON decodes strict JSON bodies (unknown fields rejected, size limited).
//   - BindQuery fills `query:"name"` tagged fields from the URL query.
//
// Errors wrap ErrInvalidJSON, ErrInvalidQuery, ErrUnsupportedMediaType,
// ErrMissingContentType or ErrBodyTooLarge; the handler package maps them to
// 4xx responses.
package binder
