// Package cookie reads and writes HTTP cookies, optionally signed or
// encrypted, plus read-once flash values.
//
// Plain cookies need no configuration:
//
//	m := cookie.New()
//	m.Set(w, "theme", "dark", 86400)
//	theme, err := m.Get(r, "theme")
//
// A secret of at least 32 bytes enables the rest:
//
//	m := cookie.New(
//	    cookie.WithSecret(os.Getenv("COOKIE_SECRET")),
//	    cookie.WithSecure(true),
//	)
//
//	// HMAC-SHA256, bound to the cookie name.
//	err := m.SetSigned(w, "sessionId", userID, 86400)
//	userID, err := m.GetSigned(r, "sessionId")
//
//	// AES-256-GCM.
//	err := m.SetEncrypted(w, "prefs", prefs, 86400)
//
//	// Read once, then deleted.
//	err := m.SetFlash(w, "notice", "Welcome back!")
//	var notice string
//	err := m.Flash(w, r, "notice", &notice)
//
// Within a conduit app the manager is configured with
// conduit.WithCookieOptions and used through the Context cookie methods.
package cookie
