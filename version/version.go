// Package version reports build identification set through -ldflags, e.g.
//
//	go build -ldflags "-X github.com/cwbudde/room-raider/version.version=v1.0.0" ./cmd/roomraider
package version

import "runtime/debug"

var (
	name    = "roomraider"
	version = ""
	commit  = ""
)

// Name returns the program name.
func Name() string {
	return name
}

// Version returns the release version, falling back to the module version
// recorded by the Go toolchain.
func Version() string {
	if version != "" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "dev"
}

// Commit returns the VCS revision the binary was built from.
func Commit() string {
	if commit != "" {
		return commit
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}

	return "unknown"
}
