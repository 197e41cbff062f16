// Package version holds the library's own semver, stamped onto every
// container this module creates so the reaper filter and test assertions
// have something stable to match against.
package version

// Version is the library's semantic version. It is embedded in the
// org.containerlab.version label on every container the session manager
// creates.
const Version = "0.1.0"

// Language is the host-language tag embedded in the org.containerlab.lang
// label, mirroring the informational tag testcontainers libraries in other
// languages attach for cross-client debugging.
const Language = "go"
