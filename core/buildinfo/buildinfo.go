package buildinfo

import "os"

// These variables are intended to be set via -ldflags at build time:
//
//	-X 'github.com/xbnstudios/furcast-nsfw-bot/core/buildinfo.Version=v1.2.3'
//	-X 'github.com/xbnstudios/furcast-nsfw-bot/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/xbnstudios/furcast-nsfw-bot/core/buildinfo.Date=2026-08-30T12:00:00Z'
//
// Default values are useful for local dev.
var (
	// Version reports the semantic version or tag of the build.
	Version = "dev"
	// Commit reports the source control commit used for the build.
	Commit = "local"
	// Date reports the build timestamp in RFC3339 format.
	Date = ""
)

// MarkerEnv names the environment variable carrying the deployment's
// version marker. Serverless platforms set it per revision.
const MarkerEnv = "BUILD_VERSION"

// Marker returns the deployment version marker, preferring the environment
// over the compiled-in Version.
func Marker() string {
	if v := os.Getenv(MarkerEnv); v != "" {
		return v
	}
	return Version
}
