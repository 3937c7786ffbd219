// Package version exposes build metadata injected at link time, e.g.
//
//	go build -ldflags "-X github.com/rshade/ghgdash/pkg/version.version=v1.2.3"
package version

//nolint:gochecknoglobals // Overridden via -ldflags at build time.
var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// GetCommit returns the git commit the binary was built from.
func GetCommit() string {
	return commit
}
