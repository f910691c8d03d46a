// Package version holds build information for the fauna CLI.
//
// Values are injected at build time:
//
//	-ldflags "-X github.com/incognito1025/fauna-go/internal/version.version=v1.0.0 -X github.com/incognito1025/fauna-go/internal/version.commit=abc123 -X github.com/incognito1025/fauna-go/internal/version.buildTime=2025-01-01T00:00:00Z"
package version

import (
	"fmt"
	"io"
	"strings"
)

//nolint:gochecknoglobals // Required for build-time injection via ldflags.
var (
	version   string
	commit    string
	buildTime string
)

// ApplicationName is the name of the application displayed in version output.
const ApplicationName = "Fauna CLI"

// Default values used when build information is not available.
const (
	DefaultVersion   = "dev"
	DefaultCommit    = "unknown"
	DefaultBuildTime = "unknown"
)

// Output labels.
const (
	LabelVersion   = "Version"
	LabelCommit    = "Commit"
	LabelBuilt     = "Built"
	fieldSeparator = ": "
)

// Info is a snapshot of the build information with defaults applied.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:   orDefault(version, DefaultVersion),
		Commit:    orDefault(commit, DefaultCommit),
		BuildTime: orDefault(buildTime, DefaultBuildTime),
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// IsDevelopment reports whether the binary was built without a version.
func (i Info) IsDevelopment() bool {
	return i.Version == DefaultVersion
}

// FormatShort returns only the version number.
func (i Info) FormatShort() string {
	return i.Version
}

// FormatFull returns the application name followed by one labelled line per field.
func (i Info) FormatFull() string {
	var b strings.Builder
	b.WriteString(ApplicationName + "\n")
	for _, line := range [][2]string{
		{LabelVersion, i.Version},
		{LabelCommit, i.Commit},
		{LabelBuilt, i.BuildTime},
	} {
		b.WriteString(line[0] + fieldSeparator + line[1] + "\n")
	}
	return b.String()
}

// Write writes the short or full format to w.
func (i Info) Write(w io.Writer, short bool) error {
	if short {
		_, err := fmt.Fprintln(w, i.FormatShort())
		return err
	}
	_, err := fmt.Fprint(w, i.FormatFull())
	return err
}

// SetBuildVars overrides the injected values. Used by tests and by cmd when
// the legacy cmd-level variables are set.
func SetBuildVars(ver, com, bt string) {
	version = ver
	commit = com
	buildTime = bt
}

// ResetBuildVars clears all injected values.
func ResetBuildVars() {
	SetBuildVars("", "", "")
}
