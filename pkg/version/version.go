// Package version holds the build version, overridable at link time.
package version

// Version is set via -ldflags "-X github.com/tripline/catsearch/pkg/version.Version=...".
var Version = "0.1.0-dev"
