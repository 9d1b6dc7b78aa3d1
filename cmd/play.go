package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsphweid/chordvoicer/chord"
	"github.com/jsphweid/chordvoicer/constants"
	"github.com/jsphweid/chordvoicer/playback"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	playOctave int
	playIndex  int
	playAll    bool
	playPort   int
	playChan   uint8
)

func init() {
	addOctaveFlag(playCmd, &playOctave)
	playCmd.Flags().IntVarP(&playIndex, "index", "i", 0, "which voicing to play")
	playCmd.Flags().BoolVarP(&playAll, "all", "a", false, "play every voicing in order")
	playCmd.Flags().IntVarP(&playPort, "port", "p", 0, "MIDI out port number, MIDI_OUT_PORT when not given")
	addChannelFlag(playCmd, &playChan)
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <root> [type]",
	Short: "Plays voicings on a MIDI out port",
	Long:  `Plays one voicing (or all of them) of a chord on a MIDI out port.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, symbol, err := chordArgs(args)
		if err != nil {
			return err
		}
		return play(root, symbol)
	},
}

func outPortNames() string {
	var names []string
	for i, out := range midi.GetOutPorts() {
		names = append(names, fmt.Sprintf("%v: %v", i, out.String()))
	}
	return strings.Join(names, ", ")
}

func addChannelFlag(c *cobra.Command, channel *uint8) {
	c.Flags().Uint8Var(channel, "channel", 0, "MIDI channel, 0-15")
}

// openPlayer connects a Player to MIDI out port number port. The returned
// func releases everything and closes the driver.
func openPlayer(port int, channel uint8) (*playback.Player, func(), error) {
	if channel > 15 {
		return nil, nil, fmt.Errorf("MIDI channel %v out of range 0-15", channel)
	}

	outs := midi.GetOutPorts()
	if port < 0 || port >= len(outs) {
		midi.CloseDriver()
		return nil, nil, fmt.Errorf("no MIDI out port %v (have %v)", port, outPortNames())
	}
	send, err := midi.SendTo(outs[port])
	if err != nil {
		midi.CloseDriver()
		return nil, nil, fmt.Errorf("could not open MIDI out port %v: %w", port, err)
	}

	player := playback.NewPlayer(send, constants.GetPlayHold())
	player.SetChannel(channel)
	closePlayer := func() {
		if err := player.ReleaseAll(); err != nil {
			fmt.Printf("Could not release notes: %v\n", err)
		}
		midi.CloseDriver()
	}
	return player, closePlayer, nil
}

func play(root, symbol string) error {
	voicings := chord.GenerateDefault(root, symbol, playOctave)
	if len(voicings) == 0 {
		return fmt.Errorf("no voicings for %v%v", root, symbol)
	}
	if !playAll && (playIndex < 0 || playIndex >= len(voicings)) {
		return fmt.Errorf("voicing %v out of range, %v%v has %v", playIndex, root, symbol, len(voicings))
	}

	player, closePlayer, err := openPlayer(playPort, playChan)
	if err != nil {
		return err
	}
	defer closePlayer()

	toPlay := voicings
	if !playAll {
		toPlay = voicings[playIndex : playIndex+1]
	}
	hold := constants.GetPlayHold()
	for _, v := range toPlay {
		fmt.Printf("%v: %v\n", v.Label, joinPitches(v.Notes))
		if err := player.PlayNow(chord.Midis(v)); err != nil {
			return err
		}
		time.Sleep(hold)
	}
	return player.ReleaseAll()
}
