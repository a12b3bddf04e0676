package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Profile
		wantErr bool
	}{
		{"debug canonical", "Debug", ProfileDebug, false},
		{"release canonical", "Release", ProfileRelease, false},
		{"case insensitive", "debug", ProfileDebug, false},
		{"uppercase", "RELEASE", ProfileRelease, false},
		{"unknown profile", "RelWithDebInfo", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProfile(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionsTestsEnabled(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want bool
	}{
		{"debug default", Options{Profile: ProfileDebug}, true},
		{"debug no-tests", Options{Profile: ProfileDebug, NoTests: true}, false},
		{"release default", Options{Profile: ProfileRelease}, false},
		{"release no-tests", Options{Profile: ProfileRelease, NoTests: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.TestsEnabled())
		})
	}
}

func TestLoadManifestMissingFileUsesDefaults(t *testing.T) {
	man, err := LoadManifest(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "slaballocator", man.Executable)
	assert.Equal(t, "stress_tests", man.StressDir)
	assert.Equal(t, ".cpp", man.StressExt)
	assert.Empty(t, man.CacheVars)
}

func TestLoadManifestPartialOverride(t *testing.T) {
	root := t.TempDir()
	content := "executable: allocbench\ncache_vars:\n  SLABALLOCATOR_SANITIZE: \"ON\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestName), []byte(content), 0o644))

	man, err := LoadManifest(root)
	require.NoError(t, err)

	assert.Equal(t, "allocbench", man.Executable)
	assert.Equal(t, "stress_tests", man.StressDir)
	assert.Equal(t, ".cpp", man.StressExt)
	assert.Equal(t, "ON", man.CacheVars["SLABALLOCATOR_SANITIZE"])
}

func TestLoadManifestNormalizesExtension(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestName), []byte("stress_ext: cc\n"), 0o644))

	man, err := LoadManifest(root)
	require.NoError(t, err)
	assert.Equal(t, ".cc", man.StressExt)
}

func TestLoadManifestMalformed(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestName), []byte("executable: [\n"), 0o644))

	_, err := LoadManifest(root)
	require.Error(t, err)
}
