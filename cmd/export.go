package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/chordvoicer/chord"
	"github.com/jsphweid/chordvoicer/constants"
	"github.com/jsphweid/chordvoicer/midi"
	"github.com/spf13/cobra"
)

var (
	exportOctave int
	exportOut    string
	exportBpm    float64
)

func init() {
	addOctaveFlag(exportCmd, &exportOctave)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "file to write (default <EXPORT_PATH>/<root><type>.mid)")
	exportCmd.Flags().Float64Var(&exportBpm, "bpm", 120, "tempo of the exported file")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <root> [type]",
	Short: "Writes the voicings of a chord to a MIDI file",
	Long:  `Writes every voicing of a chord, one after the other, to a standard MIDI file.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, symbol, err := chordArgs(args)
		if err != nil {
			return err
		}
		return export(root, symbol)
	},
}

// exportName makes a chord name safe to use as a file name
func exportName(root, symbol string) string {
	r := strings.NewReplacer("#", "s", "/", "_", "^", "maj", "+", "aug")
	return r.Replace(root + symbol)
}

func export(root, symbol string) error {
	voicings := chord.GenerateDefault(root, symbol, exportOctave)
	if len(voicings) == 0 {
		return fmt.Errorf("no voicings for %v%v", root, symbol)
	}

	path := exportOut
	if path == "" {
		dir := constants.GetExportDir()
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("could not create %v: %w", dir, err)
		}
		path = filepath.Join(dir, exportName(root, symbol)+".mid")
	}

	if err := midi.WriteVoicingsFile(path, root+symbol, voicings, exportBpm); err != nil {
		return err
	}
	fmt.Printf("Wrote %v voicings to %v\n", len(voicings), path)
	return nil
}
