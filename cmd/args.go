package cmd

import (
	"fmt"

	"github.com/jsphweid/chordvoicer/constants"
	"github.com/jsphweid/chordvoicer/theory"
	"github.com/spf13/cobra"
)

// chordArgs reads "<root> [type]" with the type defaulting to major
func chordArgs(args []string) (string, string, error) {
	root := args[0]
	symbol := constants.DefaultChordType
	if len(args) > 1 {
		symbol = args[1]
	}
	if !theory.IsPitchClass(root) {
		return "", "", fmt.Errorf("%w: %q", theory.ErrInvalidRoot, root)
	}
	return root, symbol, nil
}

func addOctaveFlag(c *cobra.Command, octave *int) {
	c.Flags().IntVarP(octave, "octave", "o", constants.DefaultOctave, "base octave, DEFAULT_OCTAVE when not given")
}
