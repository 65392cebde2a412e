// Package version reports the build of the thorsdk binary and compares
// release versions.
package version

import (
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
)

// Set at build time with -ldflags "-X".
//
//nolint:gochecknoglobals // linker-injected build metadata
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
	BuildDate string `json:"buildDate,omitempty" yaml:"buildDate,omitempty"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

// String renders "thorsdk <version> (<commit>) <os>/<arch>".
func (i Info) String() string {
	var sb strings.Builder
	sb.WriteString("thorsdk ")
	sb.WriteString(i.Version)
	if i.Commit != "" {
		sb.WriteString(" (")
		sb.WriteString(shortCommit(i.Commit))
		sb.WriteString(")")
	}
	sb.WriteString(" ")
	sb.WriteString(i.Platform)
	sb.WriteString(" ")
	sb.WriteString(i.GoVersion)
	return sb.String()
}

// Get returns the build information. Without linker flags it falls back to
// the module version and VCS revision recorded by the Go toolchain.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		}
	}
	return info
}

func shortCommit(c string) string {
	if len(c) > 12 {
		return c[:12]
	}
	return c
}

// CompareVersions returns 1 if v1 > v2, -1 if v1 < v2 and 0 if equal.
// Development builds (empty, "dev" or a commit hash) sort before every
// release. Pre-release and build suffixes are ignored.
func CompareVersions(v1, v2 string) int {
	dev1, dev2 := IsDevelopment(v1), IsDevelopment(v2)
	switch {
	case dev1 && dev2:
		return 0
	case dev1:
		return -1
	case dev2:
		return 1
	}

	p1, p2 := parseVersion(v1), parseVersion(v2)
	for i := range 3 {
		a, b := part(p1, i), part(p2, i)
		if a != b {
			if a > b {
				return 1
			}
			return -1
		}
	}
	return 0
}

// IsDevelopment reports whether v names an unreleased build.
func IsDevelopment(v string) bool {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	return v == "" || v == "dev" || isCommitHash(v)
}

// NormalizeVersion trims whitespace, "v" prefixes and any pre-release or
// build suffix.
func NormalizeVersion(v string) string {
	if idx := strings.IndexAny(v, "-+"); idx != -1 {
		v = v[:idx]
	}
	for {
		trimmed := strings.TrimLeft(strings.TrimSpace(v), "v")
		if trimmed == v {
			return v
		}
		v = trimmed
	}
}

func parseVersion(v string) []int {
	parts := strings.Split(NormalizeVersion(v), ".")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func part(parts []int, i int) int {
	if i < len(parts) {
		return parts[i]
	}
	return 0
}

// isCommitHash matches 7 to 40 hex characters with at least one letter, so
// numeric versions such as "2024010100" are not mistaken for hashes.
func isCommitHash(s string) bool {
	s = strings.TrimSuffix(s, "-dirty")
	if len(s) < 7 || len(s) > 40 {
		return false
	}
	hasLetter := false
	for _, c := range strings.ToLower(s) {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
			hasLetter = true
		default:
			return false
		}
	}
	return hasLetter
}
