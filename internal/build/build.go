// Package build holds the version information injected at link time, e.g.
//
//	go build -ldflags "-X github.com/openfga/nodekit/internal/build.Version=v0.1.0"
package build

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
