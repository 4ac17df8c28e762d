package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), p)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), p)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("max_depth: 7\n"), 0o644))
	p, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, p.MaxDepth)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_multiplier: 1.1\nmax_depth: 6\n"), 0o644))

	t.Setenv(EnvMaxDepth, "3")

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.1, p.MinMultiplier)
	assert.Equal(t, DefaultMaxMultiplier, p.MaxMultiplier)
	assert.Equal(t, 3, p.MaxDepth)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: [1, 2"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_BadEnv(t *testing.T) {
	chdir(t, t.TempDir())

	for _, v := range []string{"lots", "NaN", "+Inf"} {
		t.Setenv(EnvMinMultiplier, v)
		_, err := Load("")
		require.ErrorIs(t, err, ErrInvalidPolicy, v)
	}
}

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		wantErr bool
	}{
		{"defaults", DefaultPolicy(), false},
		{"zero depth allowed", Policy{MinMultiplier: 1, MaxMultiplier: 1, MaxDepth: 0}, false},
		{"zero min", Policy{MinMultiplier: 0, MaxMultiplier: 1.5, MaxDepth: 4}, true},
		{"inverted band", Policy{MinMultiplier: 1.5, MaxMultiplier: 1.2, MaxDepth: 4}, true},
		{"negative depth", Policy{MinMultiplier: 1.2, MaxMultiplier: 1.5, MaxDepth: -1}, true},
		{"nan min", Policy{MinMultiplier: math.NaN(), MaxMultiplier: 1.5, MaxDepth: 4}, true},
		{"nan max", Policy{MinMultiplier: 1.2, MaxMultiplier: math.NaN(), MaxDepth: 4}, true},
		{"infinite max", Policy{MinMultiplier: 1.2, MaxMultiplier: math.Inf(1), MaxDepth: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPolicy)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
