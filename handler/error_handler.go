package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authkit/binder"
	"github.com/dmitrymomot/authkit/pkg/logger"
)

// classifyBindError maps binder failures onto HTTP errors.
func classifyBindError(err error) (HTTPError, bool) {
	switch {
	case errors.Is(err, binder.ErrBodyTooLarge):
		return ErrRequestEntityTooLarge, true
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return ErrUnsupportedMediaType, true
	case errors.Is(err, binder.ErrInvalidJSON), errors.Is(err, binder.ErrInvalidQuery):
		return ErrBadRequest, true
	}
	return HTTPError{}, false
}

func determineLogLevel(statusCode int) slog.Level {
	if statusCode < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewErrorHandler returns an ErrorHandler that logs err with the request id
// and renders it with JSONError.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()

		if httpErr, ok := classifyBindError(err); ok {
			err = errors.Join(httpErr, err)
		}

		resp := JSONError(err)

		status := http.StatusInternalServerError
		if jr, ok := resp.(*jsonResponse); ok {
			status = jr.status
		}

		log.LogAttrs(r.Context(), determineLogLevel(status), "request error",
			logger.RequestID(middleware.GetReqID(r.Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
