// Package password hashes and verifies user passwords with argon2id.
//
// Hashes are encoded as PHC strings that embed the algorithm, version, cost
// parameters, salt and digest:
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<digest>
//
// Verification always uses the parameters found in the stored string, so
// raising the default cost never invalidates existing hashes. Legacy bcrypt
// hashes ($2a$, $2b$, $2y$) are still accepted by Compare; NeedsRehash reports
// them so callers can upgrade on the next successful login.
//
// Argon2id is deliberately slow and memory hungry. Hasher runs every Hash and
// Verify on a bounded async.Pool so request goroutines only wait for the
// result and the number of simultaneous computations stays fixed.
//
// # Usage
//
//	h := password.NewHasher(password.WithWorkers(4))
//	defer h.Close()
//
//	encoded, err := h.Hash(ctx, []byte("correct horse battery staple"))
//	if err != nil {
//	    return err
//	}
//
//	switch err := h.Verify(ctx, encoded, []byte(input)); {
//	case err == nil:
//	    // ok
//	case errors.Is(err, password.ErrMismatch):
//	    // wrong password
//	case errors.Is(err, password.ErrMalformedHash):
//	    // stored hash is corrupt; log it, answer "invalid credentials"
//	}
package password
