package handler

import "net/http"

// emptyResponse represents an empty HTTP response with only a status code
type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// NoContent responds with 204 and no body.
func NoContent() Response {
	return emptyResponse{status: http.StatusNoContent}
}

// Status responds with the given code and no body.
func Status(code int) Response {
	return emptyResponse{status: code}
}
