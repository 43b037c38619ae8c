// Package soundcloud is a client for the public SoundCloud web site and its api-v2.
// It scrapes track and playlist pages for numeric IDs, resolves track metadata
// and progressive stream locations through the API, downloads payloads and
// artwork, and discovers the public client ID from the site's JavaScript bundles.
// Every API request carries the configured client ID as a query parameter.
package soundcloud
