// Package version carries build metadata stamped via -ldflags and
// served on the version endpoint. Defaults identify local builds.
package version

var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)
