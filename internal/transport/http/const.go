package http

import "time"

const (
	// DefaultTimeout is used when the configuration leaves request_timeout empty
	// but a bounded client is still wanted, e.g. for client ID discovery.
	DefaultTimeout = 60 * time.Second

	// DefaultUserAgent mimics a desktop browser; SoundCloud serves its full
	// hydrated page markup only to browser-like clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36" //nolint: lll

	// redactedValue replaces secrets in logged URLs.
	redactedValue = "REDACTED"
)
