// Package version reports the build version of the scriptgate binary.
package version

import "strings"

// Version is set at build time with:
// -ldflags "-X github.com/izzyreal/scriptgate/internal/version.Version=vX.Y.Z"
var Version = "dev"

func Current() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		return "dev"
	}
	return v
}

// UserAgent identifies outgoing catalog fetches.
func UserAgent() string {
	return "scriptgate/" + Current()
}
