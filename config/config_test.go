package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := DefaultConfig()
	cfg.Output.Kind = OutputMIDI
	cfg.Output.PortName = "IAC Driver Bus 1"
	cfg.Playback.Tempo = 96
	cfg.Voicing.Strings = []int{4, 3, 2, 1}
	require.NoError(t, cfg.SaveFile(path))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"playback":{"tempo":80}}`), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Playback.Tempo)
	assert.Equal(t, "quarter", cfg.Playback.Rhythm)
	assert.Equal(t, OutputAudio, cfg.Output.Kind)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestNormalizeRepairsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"output":{"kind":"carrier-pigeon","channel":42,"velocity":300},"playback":{"tempo":-1,"volume":3}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, OutputAudio, cfg.Output.Kind)
	assert.Equal(t, 0, cfg.Output.Channel)
	assert.Equal(t, 90, cfg.Output.Velocity)
	assert.Equal(t, 120, cfg.Playback.Tempo)
	assert.Equal(t, 0.8, cfg.Playback.Volume)
}

func TestMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestDirHonorsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	got, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.json"), path)
}
