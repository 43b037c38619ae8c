// Package http provides http.RoundTripper wrappers used by the SoundCloud client:
// default header injection and debug dumps of requests and responses.
package http
