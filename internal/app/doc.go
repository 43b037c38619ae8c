// Package app wires the SoundCloud client, URL processor and tag processor
// into the download service and runs the commands of the CLI.
package app
