package http

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/oshokin/soundcloud-grabber/internal/config"
	"github.com/oshokin/soundcloud-grabber/internal/logger"
	"github.com/oshokin/soundcloud-grabber/internal/utils"
)

// LogTransport is a custom http.RoundTripper that logs HTTP requests and responses
// when the debug level is enabled. Secret query parameters are redacted.
type LogTransport struct {
	next         http.RoundTripper
	maxLogLength uint64
	secretParams []string
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// NewLogTransport creates a LogTransport.
// If maxLogLength is 0, it defaults to config.DefaultMaxLogLength.
// Values of secretParams query parameters never reach the log.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64, secretParams ...string) http.RoundTripper {
	if maxLogLength == 0 {
		maxLogLength = config.DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
		secretParams: secretParams,
	}
}

// RoundTrip implements the http.RoundTripper interface.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	var (
		ctx         = req.Context()
		safeURL     = t.redactURL(req.URL)
		requestDump = t.dumpRequest(req)
		startTime   = time.Now()
	)

	resp, err := t.next.RoundTrip(req)
	duration := time.Since(startTime)

	if err != nil {
		logger.DebugKV(ctx, "Request failed",
			"method", req.Method,
			"url", safeURL,
			"error", err)

		return nil, err
	}

	logger.DebugKV(ctx, "Request completed",
		"method", req.Method,
		"url", safeURL,
		"status", resp.StatusCode,
		"duration", duration,
		"request", requestDump,
		"response", t.dumpResponse(resp))

	return resp, nil
}

func (t *LogTransport) redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	query := u.Query()
	changed := false

	for _, param := range t.secretParams {
		if query.Has(param) {
			query.Set(param, redactedValue)

			changed = true
		}
	}

	if !changed {
		return u.String()
	}

	redacted := *u
	redacted.RawQuery = query.Encode()

	return redacted.String()
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	// The query carries the client ID, so only the path is dumped.
	clone := req.Clone(req.Context())
	clone.URL.RawQuery = ""
	clone.RequestURI = ""

	dump, err := httputil.DumpRequest(clone, false)
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) dumpResponse(resp *http.Response) string {
	// Audio and artwork payloads are never dumped.
	contentType := resp.Header.Get("Content-Type")

	dump, err := httputil.DumpResponse(resp, utils.IsTextContentType(contentType))
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) truncate(data []byte) string {
	if uint64(len(data)) > t.maxLogLength {
		return string(data[:t.maxLogLength]) + "... [truncated]"
	}

	return string(data)
}
