// Package version holds build information set via -ldflags.
package version

import "fmt"

var (
	// Version is the semantic version of the build, "dev" for local builds
	Version = "dev"

	GitCommit = "unknown"

	// BuildTime is RFC3339
	BuildTime = "unknown"
)

// Info describes the running build
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
}

// Current returns the build information of this binary
func Current() Info {
	return Info{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}
}

func (i Info) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", i.Version, i.GitCommit, i.BuildTime)
}
