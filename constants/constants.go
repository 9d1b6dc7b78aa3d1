package constants

import (
	"os"
	"strconv"
	"time"
)

func GetPort() string {
	port := os.Getenv("PORT")
	if port != "" {
		return port
	}
	return "8080"
}

func GetDefaultOctave() int {
	return getInt("DEFAULT_OCTAVE", DefaultOctave)
}

func GetMidiOutPort() int {
	return getInt("MIDI_OUT_PORT", 0)
}

func GetExportDir() string {
	path := os.Getenv("EXPORT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

// GetPlayHold is how long a played voicing sounds before note off
func GetPlayHold() time.Duration {
	return time.Duration(getInt("PLAY_HOLD_MS", DefaultPlayHoldMs)) * time.Millisecond
}

func getInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

const DefaultOctave = 4

const DefaultChordType = "M"

// a half note at 120 BPM
const DefaultPlayHoldMs = 1000

const DefaultVelocity = 100

// play requests arriving closer together than this collapse into the last one
const PlayDebounce = 30 * time.Millisecond
