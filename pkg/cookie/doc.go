// Package cookie manages the short-lived cookies of an OAuth login flow.
//
// A Manager always has a secret, so every value can be signed or encrypted:
//
//	m, err := cookie.New(os.Getenv("COOKIE_SECRET"), cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//
//	m.SetSigned(w, "oauth_state", state, 600)        // readable, tamper-evident
//	m.SetEncrypted(w, "oauth_verifier", verifier, 600) // opaque to the client
//
// On the callback, Pop* reads the value and expires the cookie in one step:
//
//	state, err := m.PopSigned(w, r, "oauth_state")
//	switch {
//	case errors.Is(err, cookie.ErrNotFound):
//		// flow expired or never started
//	case errors.Is(err, cookie.ErrBadSig):
//		// tampered cookie
//	}
//
// Signatures are HMAC-SHA256 and encryption is AES-256-GCM keyed by the
// SHA-256 of the secret. Both cover the cookie name, so a value issued for
// one cookie is rejected when presented under another.
//
// All cookies are HttpOnly with SameSite=Lax and Path=/ unless configured.
package cookie
