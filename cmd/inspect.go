package cmd

import (
	"fmt"

	"github.com/jsphweid/chordvoicer/midi"
	"github.com/jsphweid/chordvoicer/theory"
	"github.com/spf13/cobra"
)

var (
	inspectFrom     uint64
	inspectMaxNotes int
)

func init() {
	inspectCmd.Flags().Uint64Var(&inspectFrom, "from", 0, "first tick to look at")
	inspectCmd.Flags().IntVar(&inspectMaxNotes, "max-notes", 0, "stop after this many notes (0 for all)")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a MIDI file",
	Long:  `Prints the chords (notes starting together) of a MIDI file, e.g. one written by export.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	if inspectFrom > 0 || inspectMaxNotes > 0 {
		if s, err = midi.Excerpt(s, inspectFrom, inspectMaxNotes); err != nil {
			return err
		}
	}
	for i, notes := range midi.GetChords(s) {
		pitches := make([]theory.Pitch, len(notes))
		for j, n := range notes {
			pitches[j] = theory.PitchFromMidi(n)
		}
		fmt.Printf("%3d: %v %v\n", i, joinPitches(pitches), notes)
	}
	return nil
}
