package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jsphweid/chordvoicer/chord"
	"github.com/jsphweid/chordvoicer/model"
	"github.com/jsphweid/chordvoicer/theory"
	"github.com/spf13/cobra"
)

var (
	voicingsOctave int
	voicingsJSON   bool
)

func init() {
	addOctaveFlag(voicingsCmd, &voicingsOctave)
	voicingsCmd.Flags().BoolVar(&voicingsJSON, "json", false, "print the voicings as JSON")
	rootCmd.AddCommand(voicingsCmd)
}

var voicingsCmd = &cobra.Command{
	Use:   "voicings <root> [type]",
	Short: "Lists the voicings of a chord",
	Long: `Lists every distinct voicing of a chord, ranked by inversion and style.
The type defaults to major, e.g. "voicings Eb m7 --octave 3".`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, symbol, err := chordArgs(args)
		if err != nil {
			return err
		}
		if _, ok := theory.Default.Lookup(symbol); !ok {
			return fmt.Errorf("%w: %q", theory.ErrUnknownChord, symbol)
		}
		return printVoicings(root, symbol)
	},
}

func joinPitches(pitches []theory.Pitch) string {
	names := make([]string, len(pitches))
	for i, p := range pitches {
		names[i] = p.String()
	}
	return strings.Join(names, " ")
}

func printVoicings(root, symbol string) error {
	voicings := chord.GenerateDefault(root, symbol, voicingsOctave)
	if voicingsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(model.VoicingsResponse{
			Root:     root,
			Type:     symbol,
			Octave:   voicingsOctave,
			Voicings: voicings,
		})
	}
	for i, v := range voicings {
		fmt.Printf("%2d. %v: %v (%v semitones)\n", i, v.Label, joinPitches(v.Notes), v.Range)
	}
	return nil
}
