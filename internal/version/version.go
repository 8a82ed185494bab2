// Package version exposes the build version of the tool itself.
package version

// current is overridable at build time:
//
//	go build -ldflags "-X minver/internal/version.current=1.2.3"
var current = "0.1.0"

// GetVersion returns the tool's version string.
func GetVersion() string {
	return current
}
