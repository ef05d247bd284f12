package handler_test

import (
	"context"
	"net/http"
)

func contextWithValue(r *http.Request, key, val any) context.Context {
	return context.WithValue(r.Context(), key, val)
}
