package main

import "github.com/jsphweid/chordvoicer/cmd"

func main() {
	cmd.Execute()
}
