// Package version reports build information for ringquest
package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"time"
)

const unknown = "unknown"

// Set at build time with -ldflags "-X ringquest/internal/version.Version=..."
var (
	Version   = "dev"
	GitCommit = unknown
	BuildTime = unknown
	BuildUser = unknown
)

// BuildInfo contains detailed build information
type BuildInfo struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit"`
	BuildTime  string `json:"build_time"`
	BuildUser  string `json:"build_user"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
	Arch       string `json:"arch"`
	CGOEnabled bool   `json:"cgo_enabled"`
}

// GetBuildInfo returns the linker values, completed from the VCS stamp
// the go command embeds when they were not set
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		BuildUser: BuildUser,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}

	if embedded, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range embedded.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.GitCommit == unknown {
					info.GitCommit = setting.Value
				}
			case "vcs.time":
				if info.BuildTime == unknown {
					info.BuildTime = setting.Value
				}
			case "CGO_ENABLED":
				info.CGOEnabled = setting.Value == "1"
			}
		}
	}

	return info
}

// ShortCommit returns the first seven characters of the commit
func (b BuildInfo) ShortCommit() string {
	if len(b.GitCommit) > 7 {
		return b.GitCommit[:7]
	}
	return b.GitCommit
}

// String returns a one-line description of the build
func (b BuildInfo) String() string {
	s := fmt.Sprintf("ringquest version %s", b.Version)

	if b.GitCommit != unknown {
		s += fmt.Sprintf(" (commit %s)", b.ShortCommit())
	}

	if b.BuildTime != unknown {
		built := b.BuildTime
		if t, err := time.Parse(time.RFC3339, b.BuildTime); err == nil {
			built = t.Format("2006-01-02 15:04:05")
		}
		s += " built on " + built
	}

	s += fmt.Sprintf(" with %s for %s/%s", b.GoVersion, b.Platform, b.Arch)

	if b.BuildUser != unknown {
		s += " by " + b.BuildUser
	}
	return s
}

// GetVersion returns the release version, or dev-<commit> for development
// builds
func GetVersion() string {
	info := GetBuildInfo()
	if info.Version == "dev" && info.GitCommit != unknown {
		return "dev-" + info.ShortCommit()
	}
	return info.Version
}

// GetDetailedVersion returns a detailed version string
func GetDetailedVersion() string {
	return GetBuildInfo().String()
}

// PrintBuildInfo writes formatted build information
func PrintBuildInfo(w io.Writer) {
	info := GetBuildInfo()

	fmt.Fprintln(w, "ringquest - deliver the ring to the bride")
	fmt.Fprintf(w, "Version:     %s\n", info.Version)
	fmt.Fprintf(w, "Git Commit:  %s\n", info.GitCommit)
	fmt.Fprintf(w, "Build Time:  %s\n", info.BuildTime)
	fmt.Fprintf(w, "Build User:  %s\n", info.BuildUser)
	fmt.Fprintf(w, "Go Version:  %s\n", info.GoVersion)
	fmt.Fprintf(w, "Platform:    %s/%s\n", info.Platform, info.Arch)
	fmt.Fprintf(w, "CGO Enabled: %t\n", info.CGOEnabled)
}
