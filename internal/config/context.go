package config

import (
	"path/filepath"
	"runtime"
)

// CompileDBName is the compilation database file cmake exports and the
// linker stage publishes at the project root for clangd.
const CompileDBName = "compile_commands.json"

// Context is the read-only set of derived paths every stage works against.
// It is computed once from the project root and the invocation options and
// never changes for the remainder of the run.
type Context struct {
	Options  Options
	Manifest Manifest

	// ProjectRoot is the absolute path of the project being built.
	ProjectRoot string
	// BuildRoot is <root>/build, the directory the clean stage wipes.
	BuildRoot string
	// BuildDir is <root>/build/<profile>, the active configuration's
	// build tree. No stage places build outputs anywhere else.
	BuildDir string
	// ExecutablePath is the primary build artifact inside BuildDir.
	ExecutablePath string

	// TestsEnabled is fixed here so the test stage reads the same value
	// the configure stage passed to cmake, never a recomputed one.
	TestsEnabled bool
}

// NewContext derives the build context. BuildDir is a pure function of the
// project root and profile name.
func NewContext(projectRoot string, opts Options, man Manifest) *Context {
	buildRoot := filepath.Join(projectRoot, "build")
	buildDir := filepath.Join(buildRoot, string(opts.Profile))

	return &Context{
		Options:        opts,
		Manifest:       man,
		ProjectRoot:    projectRoot,
		BuildRoot:      buildRoot,
		BuildDir:       buildDir,
		ExecutablePath: filepath.Join(buildDir, man.Executable+ExecSuffix()),
		TestsEnabled:   opts.TestsEnabled(),
	}
}

// CompileDBSource is the compilation database inside the active build tree.
func (c *Context) CompileDBSource() string {
	return filepath.Join(c.BuildDir, CompileDBName)
}

// CompileDBTarget is the published compilation database at the project root.
func (c *Context) CompileDBTarget() string {
	return filepath.Join(c.ProjectRoot, CompileDBName)
}

// StressSourceDir is the directory scanned for stress-test sources.
func (c *Context) StressSourceDir() string {
	return filepath.Join(c.ProjectRoot, c.Manifest.StressDir)
}

// ExecSuffix returns the platform executable suffix (".exe" on Windows).
func ExecSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
