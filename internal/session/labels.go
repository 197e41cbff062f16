package session

import "github.com/containerlab/containerlab/internal/platform/version"

// Reserved label keys every container this module creates carries. Key
// names must stay stable for the session's lifetime and match the
// reaper's filter.
const (
	LabelSessionID = "org.containerlab.session-id"
	LabelVersion   = "org.containerlab.version"
	LabelLang      = "org.containerlab.lang"
	LabelPresent   = "org.containerlab"
	LabelNonce     = "org.containerlab.nonce"
)

// sessionLabels returns the five reserved labels with this session's
// values, as an unordered map; Manager.reaperFilter fixes the order the
// reaper registration encodes them in.
// nonce is a fresh value per process, generated once in Manager.Init, so a
// reaper filter never matches containers left over from an earlier run
// that happened to compute the same session id (pid reuse within the same
// timestamp).
func sessionLabels(sessionID, nonce string) map[string]string {
	return map[string]string{
		LabelSessionID: sessionID,
		LabelVersion:   version.Version,
		LabelLang:      version.Language,
		LabelPresent:   "true",
		LabelNonce:     nonce,
	}
}
