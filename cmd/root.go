package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/jsphweid/chordvoicer/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "chordvoicer",
	Short: "Piano chord voicings",
	Long: `Generates piano voicings (inversions, close, open, spread and drop 2)
for a chord, plays them over MIDI and serves them to a keyboard UI.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadEnv()
		cobra.CheckErr(applyEnvDefaults(cmd))
	},
}

// loadEnv reads .env if there is one. Real environment variables win.
func loadEnv() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		fmt.Printf("Could not load .env: %v\n", err)
	}
}

// envDefaults are flags whose default comes from the environment. They
// are resolved after .env is loaded, not when the flag is registered.
var envDefaults = map[string]func() int{
	"octave": constants.GetDefaultOctave,
	"port":   constants.GetMidiOutPort,
}

func applyEnvDefaults(cmd *cobra.Command) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		get, ok := envDefaults[f.Name]
		if !ok || f.Changed || err != nil {
			return
		}
		err = f.Value.Set(strconv.Itoa(get()))
	})
	return err
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
