package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inDirWithEnv runs the test from a temp dir holding a .env with contents
func inDirWithEnv(t *testing.T, contents string) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(contents), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
	})
}

// unsetEnv clears keys so .env can set them, and clears them again after
func unsetEnv(t *testing.T, keys ...string) {
	for _, key := range keys {
		os.Unsetenv(key)
	}
	t.Cleanup(func() {
		for _, key := range keys {
			os.Unsetenv(key)
		}
	})
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func run(t *testing.T, args ...string) {
	resetFlags(voicingsCmd)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
}

func TestDotEnvSetsDefaultOctave(t *testing.T) {
	unsetEnv(t, "DEFAULT_OCTAVE")
	inDirWithEnv(t, "DEFAULT_OCTAVE=2\n")

	run(t, "voicings", "C")
	assert.Equal(t, 2, voicingsOctave)
}

func TestOctaveFlagBeatsDotEnv(t *testing.T) {
	unsetEnv(t, "DEFAULT_OCTAVE")
	inDirWithEnv(t, "DEFAULT_OCTAVE=2\n")

	run(t, "voicings", "C", "--octave", "5")
	assert.Equal(t, 5, voicingsOctave)
}

func TestOctaveDefaultsWithoutEnv(t *testing.T) {
	unsetEnv(t, "DEFAULT_OCTAVE")
	inDirWithEnv(t, "")

	run(t, "voicings", "C")
	assert.Equal(t, 4, voicingsOctave)
}

func TestApplyEnvDefaultsSetsMidiPort(t *testing.T) {
	t.Setenv("MIDI_OUT_PORT", "3")
	resetFlags(playCmd)

	require.NoError(t, applyEnvDefaults(playCmd))
	assert.Equal(t, 3, playPort)

	resetFlags(playCmd)
	require.NoError(t, playCmd.Flags().Set("port", "1"))
	require.NoError(t, applyEnvDefaults(playCmd))
	assert.Equal(t, 1, playPort)
}
