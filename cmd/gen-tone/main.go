// This tool generates a mono 16-bit PCM sine wav, handy for producing
// rate-rewrite test inputs.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/cwbudde/wavrate"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("gen-tone", flag.ContinueOnError)

	output := flagSet.String("output", "output.wav", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Float64("length", 5, "length in seconds of output file")
	rate := flagSet.Int("rate", 48000, "sample rate in hertz")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *rate <= 0 {
		return fmt.Errorf("invalid sample rate %d", *rate)
	}

	log.Printf("generating a %f sec sine wav at %f hz", *length, *frequency)

	numFrames := int(float64(*rate) * *length)
	frames := make([]byte, numFrames*2)

	for i := 0; i < numFrames; i++ {
		fv := math.Sin(float64(i) / float64(*rate) * *frequency * 2 * math.Pi)

		sample := int16(math.Round(fv * 32767))
		binary.LittleEndian.PutUint16(frames[i*2:], uint16(sample))
	}

	params := wavrate.Params{
		NumChans:       1,
		BytesPerSample: 2,
		SampleRate:     uint32(*rate),
		FrameCount:     uint32(numFrames),
		FormatTag:      wavrate.FormatPCM,
	}

	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", *output, err)
	}

	err = wavrate.NewEncoder(file).Encode(params, frames)
	if err != nil {
		file.Close()

		return err
	}

	return file.Close()
}
