// Package utils provides small helpers shared across the application:
// content type detection for log dumps, key=value flag parsing,
// safe integer conversions and the User-Agent provider abstraction.
package utils
