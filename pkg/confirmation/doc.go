// Package confirmation issues and verifies single-use confirmation tokens.
//
// A token is an encrypted claim set (see pkg/token) bound to a liveness record
// in a key-value store. Issue writes the record before the token is handed
// out; the record expires at the same instant as the claim, which is the
// purpose's validity window rounded down to a whole second. Verify opens the
// token and then consumes the record in one atomic store operation, so among
// any number of concurrent verifications of the same token exactly one
// succeeds.
//
// Records are namespaced as "<prefix>:<purpose>:<session key>", which keeps
// registration and password-change tokens from ever consuming each other.
//
// # Purposes
//
//   - PurposeConfirmation: account confirmation, window from Config (default 15 minutes).
//   - PurposePasswordChange: password change, fixed one hour window.
//
// # Usage
//
//	svc, err := confirmation.NewServiceFromConfig(cfg, redis.NewStorage(client),
//	    confirmation.WithLogger(log),
//	)
//	if err != nil {
//	    // configuration error: refuse to start
//	}
//
//	tok, err := svc.Issue(ctx, userID, confirmation.PurposeConfirmation)
//	if err != nil {
//	    // ErrStoreUnavailable: do not send the email
//	}
//
//	ct, err := svc.Verify(ctx, tok, confirmation.PurposeConfirmation)
//	switch {
//	case errors.Is(err, confirmation.ErrAlreadyUsedOrExpired):
//	case errors.Is(err, confirmation.ErrInvalidToken):
//	case errors.Is(err, confirmation.ErrStoreUnavailable):
//	}
//
// # Errors
//
// Verify reports ErrInvalidToken for anything that fails authentication or
// decoding, and ErrAlreadyUsedOrExpired both for consumed records and for
// authentic tokens past their expiry. The detailed reason is logged, never
// returned. Store failures are reported as ErrStoreUnavailable and are not
// retried here.
package confirmation
