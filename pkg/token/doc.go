// Package token encrypts and decrypts the claims carried by single-use
// confirmation tokens.
//
// Tokens are PASETO v4.local messages (XChaCha20 encryption with a keyed
// BLAKE2b MAC), so they are opaque, URL-safe and versioned by their
// "v4.local." header. Two pieces of data are authenticated without being
// encrypted:
//
//   - the associated secret, passed as the PASETO implicit assertion. It never
//     travels with the token; a token minted under a different associated
//     secret fails authentication.
//   - a footer {"kid":"..."} naming the key fingerprint, so logs can tell which
//     key produced a token.
//
// The claim set is fixed: user_id, session_key and exp. Decrypt rejects
// unknown, missing or malformed claims and checks expiry itself.
//
// # Usage
//
//	codec, err := token.NewCodec(secretKey, associatedSecret)
//	if err != nil {
//	    // configuration error: refuse to start
//	}
//
//	tok, err := codec.Encrypt(token.Claims{
//	    UserID:     userID,
//	    SessionKey: sessionKey,
//	    Expiration: time.Now().Add(15 * time.Minute),
//	})
//
//	claims, err := codec.Decrypt(tok)
//	if errors.Is(err, token.ErrInvalidToken) {
//	    // malformed, tampered, unparseable or expired
//	}
//
// # Errors
//
// Every failure of Decrypt matches ErrInvalidToken. ErrTokenExpired, a more
// specific variant, is only returned once the token has been authenticated, so
// it tells nothing to someone holding a forged token. The underlying cause is
// joined to the returned error for logging.
package token
