package global

import "time"

// All constants related to covlens
const (
	BinaryVersion        = "0.9.2"
	HomeDir              = "/home/covlens"
	PolicyFileName       = ".covlens.yml"
	DefaultHTTPTimeout   = 45 * time.Second
	DefaultAPITimeout    = 45 * time.Second
	DefaultPublishExpiry = 2 * time.Minute
	MaxPublishRetries    = 3
	// NoiseThreshold is the default delta magnitude, in percentage points,
	// below which a per-file coverage change counts as unchanged.
	NoiseThreshold = 0.01
	// AnnotationMarkerFmt is the hidden marker embedded in published comments,
	// the stable identity used to find a previous comment for update.
	AnnotationMarkerFmt = "<!-- covlens:%s -->"
	BaselineBlobName    = "baseline.json"
	ReporterHostRemote  = "http://reporter-service.covlens.svc.cluster.local"
)

// APIHostURLMap maps every supported git provider to its api url. Payload
// validation rejects providers that are not listed here.
var APIHostURLMap = map[string]string{
	"github":    "https://api.github.com/repos",
	"gitlab":    "https://gitlab.com/api/v4/projects",
	"bitbucket": "https://api.bitbucket.org/2.0",
}

// ReporterHost is reporter backend host end point
var ReporterHost string

// SetReporterHost is setter for ReporterHost
func SetReporterHost(host string) {
	ReporterHost = host
}
