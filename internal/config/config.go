// Package config holds the immutable invocation options, the project
// manifest, and the derived build context shared by every pipeline stage.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is an enumerated build configuration.
type Profile string

const (
	ProfileDebug   Profile = "Debug"
	ProfileRelease Profile = "Release"
)

// Profiles returns the closed set of valid build profiles.
func Profiles() []Profile {
	return []Profile{ProfileDebug, ProfileRelease}
}

// ParseProfile validates a profile name. Matching is case-insensitive so
// "--config debug" works, but the canonical casing is returned.
func ParseProfile(name string) (Profile, error) {
	for _, p := range Profiles() {
		if strings.EqualFold(name, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid build profile %q (valid: Debug, Release)", name)
}

// Options is the immutable record of invocation flags. It is populated once
// by the CLI layer and never mutated afterwards.
type Options struct {
	Profile    Profile
	Clean      bool
	BuildOnly  bool
	NoTests    bool
	StressTest bool
	Static     bool

	// Jobs overrides the autodetected build parallelism. Zero means
	// autodetect from the logical CPU count.
	Jobs int
}

// TestsEnabled reports whether the unit-test harness should be built and
// run: only the Debug profile enables tests, and --no-tests forces them off.
func (o Options) TestsEnabled() bool {
	return o.Profile == ProfileDebug && !o.NoTests
}

// Manifest carries optional project-level overrides read from
// .slabbuild.yaml at the project root. All fields have defaults, so a
// project without a manifest builds exactly like the original script.
type Manifest struct {
	// Executable is the primary build artifact name, without platform suffix.
	Executable string `yaml:"executable"`
	// StressDir is the stress-test source directory relative to the root.
	StressDir string `yaml:"stress_dir"`
	// StressExt is the stress-test source file extension, including the dot.
	StressExt string `yaml:"stress_ext"`
	// CacheVars are extra cmake cache definitions appended at configure
	// time, e.g. SLABALLOCATOR_SANITIZE: "ON".
	CacheVars map[string]string `yaml:"cache_vars"`
}

// ManifestName is the optional per-project manifest file.
const ManifestName = ".slabbuild.yaml"

// DefaultManifest returns the manifest used when no .slabbuild.yaml exists.
func DefaultManifest() Manifest {
	return Manifest{
		Executable: "slaballocator",
		StressDir:  "stress_tests",
		StressExt:  ".cpp",
	}
}

// LoadManifest reads the manifest at the project root if present. A missing
// file is not an error; the defaults are returned. A present but malformed
// file is an error so a typo does not silently build the wrong thing.
func LoadManifest(projectRoot string) (Manifest, error) {
	man := DefaultManifest()

	data, err := os.ReadFile(filepath.Join(projectRoot, ManifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return man, nil
		}
		return man, fmt.Errorf("failed to read %s: %w", ManifestName, err)
	}

	if err := yaml.Unmarshal(data, &man); err != nil {
		return man, fmt.Errorf("failed to parse %s: %w", ManifestName, err)
	}

	// Partial manifests inherit the defaults for anything left unset.
	if man.Executable == "" {
		man.Executable = "slaballocator"
	}
	if man.StressDir == "" {
		man.StressDir = "stress_tests"
	}
	if man.StressExt == "" {
		man.StressExt = ".cpp"
	}
	if !strings.HasPrefix(man.StressExt, ".") {
		man.StressExt = "." + man.StressExt
	}

	return man, nil
}
