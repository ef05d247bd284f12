// Package httpserver runs an http.Handler until its context ends, then shuts
// it down gracefully within a bounded timeout.
//
// Run binds the listener before returning control to start hooks, so a busy
// port fails fast with ErrStart. Signal handling is left to the caller:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
