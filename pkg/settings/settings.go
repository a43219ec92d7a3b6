// Package settings provides build metadata and per-run configuration shared
// across the jsonpane CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "jsonpane"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the configuration for a single invocation: logging, display, and
// ingestion limits as resolved from flags and the config file.
type Run struct {
	MinLogLevel int8

	Theme   string
	KeyMode string
	NoColor bool

	Indent            int
	Workers           int
	ParallelThreshold int
	MaxValues         int

	Width  int
	Height int
}

// NewCliParams returns a Run with the CLI defaults. Zero values for the
// flatten knobs mean "use the package defaults".
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Theme:       "dark",
		KeyMode:     "vim",
		Indent:      2,
	}
}
