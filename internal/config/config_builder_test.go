package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = errors.New("boom")

	cfg, err := b.build()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "boom")
}

func TestBuild_LaterSourceOverridesEarlier(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{
		Workers: Workers{SyncInterval: time.Minute},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
	// untouched fields keep their defaults
	assert.Equal(t, DefaultCacheVersion, cfg.Cache.Version)
	assert.Equal(t, DefaultReconcileMode, cfg.Workers.ReconcileMode)
}

func TestBuild_ZeroValuesDoNotOverride(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, DefaultProbeURL, cfg.Connectivity.ProbeURL)
}

func TestBuild_NegativeRateLimit(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Adapter: Adapter{RateLimit: -1}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}

// ── withFlags / withJSON ──────────────────────────────────────────────────────

func TestWithFlags_InvalidFlagSetsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-unknown-flag"})
	assert.Error(t, b.err)
}

func TestWithJSON_LoadsPathFromEarlierSource(t *testing.T) {
	p := writeTempFile(t, "cfg.json", `{"cache": {"version": "v9"}}`)

	b := newConfigBuilder().withDefaults().withFlags([]string{"-c", p}).withJSON()
	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "v9", cfg.Cache.Version)
}

func TestWithJSON_MissingFileSetsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-c", "/does/not/exist.json"}).withJSON()
	_, err := b.build()
	assert.Error(t, err)
}

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder().withDefaults().withJSON()
	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// ── withDotEnv ────────────────────────────────────────────────────────────────

func TestWithDotEnv_LoadsFile(t *testing.T) {
	p := writeTempFile(t, ".env", "CACHE_VERSION=from-dotenv\n")
	t.Setenv("CACHE_VERSION", "")
	require.NoError(t, os.Unsetenv("CACHE_VERSION"))

	cfg, err := newConfigBuilder().withDefaults().withDotEnv(p).withEnv().build()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Cache.Version)
}

func TestWithDotEnv_MissingFileIgnored(t *testing.T) {
	b := newConfigBuilder().withDotEnv(filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, b.err)
}

func TestWithDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	p := writeTempFile(t, ".env", "CACHE_VERSION=from-dotenv\n")
	t.Setenv("CACHE_VERSION", "from-env")

	cfg, err := newConfigBuilder().withDotEnv(p).withEnv().build()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Cache.Version)
}
