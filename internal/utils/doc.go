// Package utils holds small helpers shared across the application:
// file name cleanup, URL list files, regex group extraction and content type checks.
package utils
