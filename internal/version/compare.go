package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// CheckConfigCompatibility checks that a configuration written for configVersion can be
// run by toolVersion.
//
// Compatibility Rules:
//   - An empty config version is always accepted
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - The tool minor version must be at least the config minor version
//
// Examples:
//   - Tool 1.2.0, Config 1.2.0 -> OK
//   - Tool 1.3.0, Config 1.2.5 -> OK (newer tool)
//   - Tool 1.1.0, Config 1.2.0 -> ERROR (config needs newer features)
//   - Tool 2.0.0, Config 1.2.0 -> ERROR (major differs)
func CheckConfigCompatibility(toolVersion, configVersion string) error {
	toolVersion = strings.TrimPrefix(toolVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if configVersion == "" || toolVersion == "main" || configVersion == "main" {
		return nil
	}

	toolSemver, err := semver.NewVersion(toolVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeIncompatibleVersion, err, "invalid tool version '%s'", toolVersion)
	}

	configSemver, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeIncompatibleVersion, err, "invalid config version '%s'", configVersion)
	}

	if toolSemver.Major() != configSemver.Major() {
		return errors.Newf(errors.ErrCodeIncompatibleVersion,
			"major version mismatch: tool is %d.x.x but config requires %d.x.x",
			toolSemver.Major(), configSemver.Major())
	}

	if toolSemver.Minor() < configSemver.Minor() {
		return errors.Newf(errors.ErrCodeIncompatibleVersion,
			"minor version mismatch: tool is %d.%d.x but config requires %d.%d.x or newer",
			toolSemver.Major(), toolSemver.Minor(),
			configSemver.Major(), configSemver.Minor())
	}

	return nil
}
