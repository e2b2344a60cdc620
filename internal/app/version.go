package app

import "fmt"

// Build metadata, set via ldflags:
//
//	go build -ldflags "-X github.com/heartmarshall/deck-authoring/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion formats the build metadata for the startup log and /health.
func BuildVersion() string {
	if Commit == "unknown" {
		return Version
	}
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, BuildTime)
}
