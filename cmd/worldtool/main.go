// Command worldtool analyses speech into vocoder parameters and renders
// parameters back into audio.
//
// Usage:
//
//	worldtool [flags] <command> [args]
//
// Commands:
//
//	analyze     - WAV file to .f0/.sp/.ap files or a msgpack bundle
//	synthesize  - parameter files or bundle to WAV file
//	resynth     - analysis followed by synthesis
//	info        - engines, defaults and CPU features
//
// Examples:
//
//	worldtool analyze speech.wav -o speech
//	worldtool analyze --rate 16000 --bundle speech.wav -o speech.msgpack
//	worldtool synthesize speech -o copy.wav
//	worldtool --config world.yaml resynth speech.wav -o copy.wav
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-world/cmd/worldtool/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
