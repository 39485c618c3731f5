package version

// Overridden at build time with -ldflags "-X ...".
var (
	Version = "v0.1.0"
	Commit  = "unknown"
)

func FullVersion() string {
	return Version + " (" + Commit + ")"
}
