// Package logger wraps a zap SugaredLogger shared by the whole application.
// Loggers travel in context.Context, so a download can attach its track ID once
// and every message logged further down carries it. The level is atomic and can be
// changed after the configuration is loaded.
package logger
