// Package version provides information about the build version of the binaries.
package version

import "fmt"

// BuildInfo holds version information about the build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// String renders a one line banner for the CLI
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", b.Service, b.Version, b.Commit, b.Date)
}

// Info returns the build information for the named binary.
// Set via -ldflags "-X 'bulkdate/internal/core/version.version=v0.1.0'
// -X 'bulkdate/internal/core/version.commit=abcd' -X 'bulkdate/internal/core/version.date=2025-09-02'"
func Info(service string) BuildInfo {
	if service == "" {
		service = "bulkdate"
	}
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
