// Package cookie writes and reads HTTP cookies, optionally sealed with
// XChaCha20-Poly1305.
//
// A Manager is built from one or more secrets. The first secret seals new
// values; every secret is tried when opening, so secrets can be rotated by
// prepending the new one and dropping the old one once its cookies have
// expired. Each secret is stretched to a 256-bit key with BLAKE2b, and the
// cookie name is bound to the ciphertext as associated data, so a sealed value
// cannot be replayed under another cookie name.
//
// # Usage
//
//	cookies, err := cookie.NewFromConfig(cfg)
//	if err != nil {
//	    return err
//	}
//
//	err = cookies.SetEncrypted(w, "sid", token, cookie.WithMaxAge(3600))
//	token, err := cookies.GetEncrypted(r, "sid")
//	cookies.Delete(w, "sid")
//
// Defaults are Path "/", HttpOnly and SameSite=Lax. Config turns on Secure
// unless COOKIE_SECURE=false.
package cookie
