// Package logger wraps a global zap sugared logger behind an atomic level.
// Callers can carry a logger through context.Context, with extra key-value
// fields attached per request, and fall back to the global one otherwise.
package logger
