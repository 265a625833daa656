// Package constants holds values shared by packages that touch the file system.
package constants

import "os"

const (
	// DefaultFilePermissions sets the permissions for saved response bodies: (rw-r--r--).
	DefaultFilePermissions os.FileMode = 0o644

	// ConfigFilePermissions sets the permissions for configuration files: (rw-------).
	// Configuration files may carry bearer tokens in their headers section.
	ConfigFilePermissions os.FileMode = 0o600
)
