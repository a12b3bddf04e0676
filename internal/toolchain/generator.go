// Package toolchain probes the host for build-tool capabilities: which
// cmake generator to request and how wide the build may fan out.
package toolchain

import "os/exec"

// PreferredGenerator is requested explicitly when its tool is on PATH.
const (
	PreferredGenerator     = "Ninja"
	preferredGeneratorTool = "ninja"
)

// LookPathFunc matches exec.LookPath so the probe can be tested with a
// fake search path.
type LookPathFunc func(file string) (string, error)

// GeneratorProbe decides whether a preferred cmake generator is available.
type GeneratorProbe struct {
	lookPath LookPathFunc
}

// NewGeneratorProbe creates a probe over the real executable search path.
func NewGeneratorProbe() *GeneratorProbe {
	return &GeneratorProbe{lookPath: exec.LookPath}
}

// NewGeneratorProbeWith creates a probe over a custom search-path lookup.
func NewGeneratorProbeWith(lookPath LookPathFunc) *GeneratorProbe {
	return &GeneratorProbe{lookPath: lookPath}
}

// Preferred returns the generator to request explicitly, or ok=false when
// the host lacks it and cmake should pick its own default. Absence of the
// tool is not an error.
func (p *GeneratorProbe) Preferred() (generator string, ok bool) {
	if _, err := p.lookPath(preferredGeneratorTool); err != nil {
		return "", false
	}
	return PreferredGenerator, true
}
