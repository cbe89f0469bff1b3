package pcm_test

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/pcm"
)

func ExampleEncodeSamples() {
	data := pcm.EncodeSamples([]float64{0, 0.5, -1, 2})
	fmt.Printf("% x\n", data)

	// Output:
	// 00 00 00 40 01 80 ff 7f
}

func ExampleDecode() {
	sig, err := pcm.Decode([]byte{0xff, 0x7f, 0x00, 0x00}, pcm.Mono16(8000))
	if err != nil {
		panic(err)
	}
	fmt.Println(sig.Len(), sig.At(0), sig.At(1))

	_, err = pcm.Decode([]byte{0x00}, pcm.Mono16(8000))
	fmt.Println(err != nil && errors.Is(err, vocoder.ErrMalformedAudio))

	// Output:
	// 2 1 0
	// true
}
