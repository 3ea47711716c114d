package version

import "runtime/debug"

// Get returns the VCS revision baked into the binary, with a "-dirty"
// suffix for uncommitted builds.
func Get() string {
	var revision string
	var modified bool

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unavailable"
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		return "unavailable"
	}

	if modified {
		return revision + "-dirty"
	}

	return revision
}
