package cmd

import (
	"fmt"

	"github.com/jsphweid/chordvoicer/chord"
	"github.com/jsphweid/chordvoicer/model"
	"github.com/jsphweid/chordvoicer/theory"
	"github.com/jsphweid/chordvoicer/util"
	"github.com/spf13/cobra"
)

var reportOctave int

func init() {
	addOctaveFlag(reportCmd, &reportOctave)
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [root]",
	Short: "Creates a report",
	Long:  `Counts the voicings of every chord type over root (C by default) by style.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "C"
		if len(args) == 1 {
			root = args[0]
		}
		if !theory.IsPitchClass(root) {
			return fmt.Errorf("%w: %q", theory.ErrInvalidRoot, root)
		}
		report(root)
		return nil
	},
}

var reportStyles = []model.Style{
	model.StyleBasic,
	model.StyleClose,
	model.StylePiano,
	model.StyleStandard,
	model.StyleSpread,
	model.StyleOpen,
	model.StyleDrop2,
}

type voicingsReport struct {
	symbol  string
	total   uint64
	byStyle map[model.Style]uint64
	widest  int
}

func analyzeVoicings(root, symbol string, octave int) voicingsReport {
	r := voicingsReport{symbol: symbol, byStyle: make(map[model.Style]uint64)}
	for _, v := range chord.GenerateDefault(root, symbol, octave) {
		r.total++
		r.byStyle[v.Style]++
		r.widest = util.Max(r.widest, v.Range)
	}
	return r
}

func report(root string) {
	var totals []uint64
	fmt.Printf("%-8v %5v", "type", "total")
	for _, style := range reportStyles {
		fmt.Printf(" %8v", style)
	}
	fmt.Printf(" %6v\n", "widest")

	for _, t := range theory.Default.Ordered() {
		r := analyzeVoicings(root, t.Symbol(), reportOctave)
		totals = append(totals, r.total)
		fmt.Printf("%-8v %5v", r.symbol, r.total)
		for _, style := range reportStyles {
			fmt.Printf(" %8v", r.byStyle[style])
		}
		fmt.Printf(" %6v\n", r.widest)
	}

	fmt.Printf("chord types: %v\n", len(totals))
	fmt.Printf("voicings over %v%v: %v\n", root, reportOctave, util.Sum(totals))
}
