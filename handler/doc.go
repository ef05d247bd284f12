// Package handler provides type-safe HTTP request handling.
//
// A HandlerFunc receives a Context and an already bound request struct and
// returns a Response. Wrap adapts it to http.HandlerFunc, running the
// configured binders first and routing every error through an ErrorHandler:
//
//	type LoginRequest struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	func login(ctx handler.Context, req LoginRequest) handler.Response {
//		user, err := accounts.Login(ctx, req.Email, req.Password)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(user)
//	}
//
//	r.Post("/users/login", handler.Wrap(login,
//		handler.WithBinders[LoginRequest](binder.BindJSON()),
//		handler.WithErrorHandler[LoginRequest](handler.NewErrorHandler(log)),
//	))
//
// # Response Types
//
//	handler.JSON(data)                         // 200 OK with {"data": ...}
//	handler.JSON(data, handler.WithJSONStatus(201))
//	handler.JSONError(err)                     // {"error": {"code": ..., "message": ...}}
//	handler.Redirect("/auth/confirmed")        // 303 See Other
//	handler.NoContent()                        // 204
//
// # Errors
//
// HTTPError carries a status code and a stable machine-readable key.
// ValidationError carries per-field messages and renders as 422.
// Any other error renders as 500 with a generic message; its text is logged,
// never sent to the client.
package handler
