package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/chordvoicer/theory"
	"github.com/jsphweid/chordvoicer/util"
	"github.com/spf13/cobra"
)

var typesAliases bool

func init() {
	typesCmd.Flags().BoolVar(&typesAliases, "aliases", false, "list every accepted alias instead")
	rootCmd.AddCommand(typesCmd)
}

var typesCmd = &cobra.Command{
	Use:   "types [root]",
	Short: "Lists the chord types",
	Long:  `Lists the known chord types, common ones first, with their tones over root (C by default).`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if typesAliases {
			printAliases()
			return nil
		}
		root := "C"
		if len(args) == 1 {
			root = args[0]
		}
		if !theory.IsPitchClass(root) {
			return fmt.Errorf("%w: %q", theory.ErrInvalidRoot, root)
		}
		printTypes(root)
		return nil
	},
}

func printTypes(root string) {
	for _, t := range theory.Default.Ordered() {
		notes := theory.Default.ChordTones(root, t.Symbol())
		fmt.Printf("%-8v %-28v %v (%v notes)\n", t.Symbol(), t.Display(), strings.Join(notes, " "), len(notes))
	}
}

func printAliases() {
	aliases := theory.Default.Aliases()
	for _, alias := range util.GetSortedKeys(aliases) {
		fmt.Printf("%q -> %v\n", alias, aliases[alias])
	}
}
