// Package version carries build metadata stamped at link time via
// -ldflags "-X github.com/gitdrift/gitdrift/pkg/version.Version=...".
package version

var (
	// Version is the release version of the running binary.
	Version = "dev"

	// Commit is the git hash the binary was built from.
	Commit = "unknown"

	// Date is the build timestamp.
	Date = "unknown"
)
