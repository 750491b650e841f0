package config

import (
	"os"
	"path/filepath"
	"testing"

	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flags(t *testing.T, args ...string) *flag.FlagSet {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	AddGlobalFlags(fs)
	AddGenerateFlags(fs)
	AddDigestFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestNew_Defaults(t *testing.T) {
	cfg, err := New(flags(t))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Bits:     16,
		Rounds:   20,
		OutDir:   ".",
		Name:     "rsa16",
		Accurate: true,
		Workers:  0,
		Count:    1,
		Digest:   "sha256",
	}, cfg)
	assert.Len(t, cfg.Fields(), 8)
}

func TestNew_Flags(t *testing.T) {
	cfg, err := New(flags(t, "--bits=512", "--accurate=false", "--workers", "4", "--digest", "blake3", "--debug"))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Bits)
	assert.Equal(t, "rsa512", cfg.Name)
	assert.False(t, cfg.Accurate)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "blake3", cfg.Digest)
	assert.True(t, cfg.Debug)
}

func TestNew_Env(t *testing.T) {
	t.Setenv("RSAKEYGEN_BITS", "32")
	t.Setenv("RSAKEYGEN_OUT_DIR", "/tmp/keys")

	cfg, err := New(flags(t))
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Bits)
	assert.Equal(t, "/tmp/keys", cfg.OutDir)

	// flags win over the environment
	cfg, err = New(flags(t, "--bits=64"))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Bits)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rsakeygen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bits: 24\nname: demo\ncount: 3\n"), 0o600))

	cfg, err := New(flags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Bits)
	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, 3, cfg.Count)

	_, err = New(flags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestNew_Invalid(t *testing.T) {
	for _, args := range [][]string{
		{"--rounds=-1"},
		{"--workers=-2"},
		{"--count=0"},
		{"--digest=md5"},
	} {
		_, err := New(flags(t, args...))
		assert.Error(t, err, "%v", args)
	}
}
