package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and no layers.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.layers)
}

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// config holding only defaults.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)

	want := &StructuredConfig{}
	want.applyDefaults()
	assert.Equal(t, want, cfg)
	assert.Equal(t, DefaultAdapterAddress, cfg.Adapter.Address)
	assert.Equal(t, DefaultDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, LikesSourceRecords, cfg.App.LikesSource)
	assert.InDelta(t, DefaultSearchFuzziness, cfg.App.SearchFuzziness, 1e-9)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_FirstSourceWins verifies that fields from multiple configs are
// merged and that an earlier source is not overridden by a later one.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.add("flags", &StructuredConfig{App: App{Version: "1.0.0"}}).
		add("file", &StructuredConfig{App: App{Version: "9.9.9", Identifier: "alice.bsky.social"}})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "alice.bsky.social", cfg.App.Identifier)
}

// TestBuild_InvalidLikesSource verifies validation of the merged result.
func TestBuild_InvalidLikesSource(t *testing.T) {
	b := newConfigBuilder()
	b.add("test", &StructuredConfig{App: App{LikesSource: "timeline"}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// TestBuild_InvalidFuzziness verifies the fuzziness range check.
func TestBuild_InvalidFuzziness(t *testing.T) {
	b := newConfigBuilder()
	b.add("test", &StructuredConfig{App: App{SearchFuzziness: 1.5}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_VERSION":    "env-version",
		"APP_IDENTIFIER": "env.bsky.social",
	})

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.layers, 1)
	assert.Equal(t, "env-version", b.layers[0].cfg.App.Version)
	assert.Equal(t, "env.bsky.social", b.layers[0].cfg.App.Identifier)
}

// TestWithEnv_SetsErrorOnBadValue verifies that a parse failure is kept.
func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	setEnvVars(t, map[string]string{"ADAPTER_RATE_BURST": "many"})

	b := newConfigBuilder()
	b.withEnv()

	require.Error(t, b.err)
	assert.Contains(t, b.err.Error(), "env:")
	assert.Empty(t, b.layers)
}

// TestWithFlags_KeepsRest verifies that arguments after the flags are kept.
func TestWithFlags_KeepsRest(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags([]string{"-d", "memory", "stats"}))

	require.Len(t, b.layers, 1)
	assert.Equal(t, "memory", b.layers[0].cfg.Storage.DB.DSN)
	assert.Equal(t, []string{"stats"}, b.rest)
}

// TestWithFlags_SetsError verifies that an unknown flag is reported.
func TestWithFlags_SetsError(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags([]string{"-unknown"})

	assert.Error(t, b.err)
}

// TestWithFile_NoOp_WhenNoPathSet verifies that withFile does nothing when
// no config has a FilePath.
func TestWithFile_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.add("test", &StructuredConfig{})
	assert.Same(t, b, b.withFile())

	assert.Len(t, b.layers, 1)
	assert.NoError(t, b.err)
}

// TestWithFile_AppendsConfig_WhenValidFile verifies that a valid file is
// parsed and appended.
func TestWithFile_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredFileConfig{}
	payload.App.Version = "file-version"
	payload.App.Identifier = "file.bsky.social"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.add("test", &StructuredConfig{FilePath: path})
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.layers, 2)
	assert.Equal(t, "file-version", b.layers[1].cfg.App.Version)
	assert.Equal(t, "file.bsky.social", b.layers[1].cfg.App.Identifier)
}

// TestWithFile_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithFile_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.add("flags", &StructuredConfig{FilePath: filepath.Join(t.TempDir(), "missing.json")})
	b.withFile()

	require.Error(t, b.err)
	assert.Contains(t, b.err.Error(), "missing.json")
}

// TestWithFile_UsesLastPath verifies that when multiple configs have a
// FilePath, the last non-empty one is read.
func TestWithFile_UsesLastPath(t *testing.T) {
	first := StructuredFileConfig{}
	first.App.Version = "first"
	last := StructuredFileConfig{}
	last.App.Version = "last"

	b := newConfigBuilder()
	b.add("env", &StructuredConfig{FilePath: writeTempJSONConfig(t, first)}).
		add("flags", &StructuredConfig{FilePath: writeTempJSONConfig(t, last)})
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.layers, 3)
	assert.Equal(t, "last", b.layers[2].cfg.App.Version)
}

// TestGetStructuredConfig_Precedence verifies env over flags over file.
func TestGetStructuredConfig_Precedence(t *testing.T) {
	payload := StructuredFileConfig{}
	payload.App.Identifier = "file.bsky.social"
	payload.App.HashKey = "file-hash"
	payload.Storage.DB.DSN = "file.db"
	path := writeTempJSONConfig(t, payload)

	setEnvVars(t, map[string]string{
		"APP_IDENTIFIER": "env.bsky.social",
		"CONFIG":         path,
	})

	cfg, rest, err := GetStructuredConfig([]string{"-identifier", "flag.bsky.social", "-d", "flag.db", "login"})

	require.NoError(t, err)
	assert.Equal(t, "env.bsky.social", cfg.App.Identifier)
	assert.Equal(t, "flag.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "file-hash", cfg.App.HashKey)
	assert.Equal(t, []string{"login"}, rest)
}
