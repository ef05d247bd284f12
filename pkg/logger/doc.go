// Package logger builds the process-wide *slog.Logger and provides attribute
// helpers so every component logs the same keys.
//
// New takes functional options: output format (text or JSON), minimum level,
// static attributes, and ContextExtractor callbacks that copy request-scoped
// values (for example a request id) from the context into each record.
// WithEnvironment picks sensible defaults per deployment environment.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "authkit"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "token issued",
//	    logger.UserID(userID),
//	    logger.Purpose("confirmation"),
//	)
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("done", logger.Error(err))
//
// needs no nil check.
package logger
