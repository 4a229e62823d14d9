package buildinfo

var (
	// Version is stamped via -ldflags "-X .../buildinfo.Version=...".
	Version = "dev"
	// Commit is the short git hash of the build.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the version line shown by --version.
func String() string {
	return Version + " (commit: " + Commit + ", built: " + Date + ")"
}
