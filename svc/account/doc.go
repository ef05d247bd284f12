// Package account implements registration, email confirmation, login and
// password change for email/password users.
//
// Confirmation and password-change links carry single-use tokens issued by
// pkg/confirmation; password hashes come from pkg/password. User rows live in
// Postgres through PGStorage, whose schema ships as embedded goose
// migrations (see Migrations).
//
//	svc := account.NewService(storage, hasher, tokens,
//		account.NewEmailNotifier(sender, account.NotifierConfig{BaseURL: baseURL}),
//		account.WithLogger(log),
//	)
//	user, err := svc.Register(ctx, account.RegisterInput{Email: "a@b.c", Password: "..."})
package account
