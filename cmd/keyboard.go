package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jsphweid/chordvoicer/keyboard"
	"github.com/jsphweid/chordvoicer/theory"
	"github.com/spf13/cobra"
)

var (
	keyboardSelected string
	keyboardSound    string
	keyboardOut      string
)

func init() {
	keyboardCmd.Flags().StringVar(&keyboardSelected, "selected", "", "key to draw as selected")
	keyboardCmd.Flags().StringVar(&keyboardSound, "sound", "", "comma separated pitches to draw as sounding, e.g. C4,E4,G4")
	keyboardCmd.Flags().StringVar(&keyboardOut, "out", "", "file to write (default stdout)")
	rootCmd.AddCommand(keyboardCmd)
}

var keyboardCmd = &cobra.Command{
	Use:   "keyboard",
	Short: "Draws the one octave keyboard as SVG",
	Long:  `Draws the one octave keyboard as SVG with the selected and sounding keys highlighted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return drawKeyboard()
	},
}

func drawKeyboard() error {
	options := keyboard.DefaultOptions()
	if keyboardSelected != "" {
		if !keyboard.HasKey(keyboardSelected) {
			return fmt.Errorf("no key %q on the keyboard", keyboardSelected)
		}
		options.InitialSelectedNote = keyboardSelected
	}
	kb := keyboard.New(options)

	if keyboardSound != "" {
		var sounding []theory.Pitch
		for _, s := range strings.Split(keyboardSound, ",") {
			p, ok := theory.ParsePitch(strings.TrimSpace(s))
			if !ok {
				return fmt.Errorf("invalid pitch %q", s)
			}
			sounding = append(sounding, p)
		}
		kb.Sound(sounding)
	}

	if keyboardOut == "" {
		return kb.RenderSVG(os.Stdout)
	}
	f, err := os.Create(keyboardOut)
	if err != nil {
		return fmt.Errorf("could not create %v: %w", keyboardOut, err)
	}
	defer f.Close()
	return kb.RenderSVG(f)
}
