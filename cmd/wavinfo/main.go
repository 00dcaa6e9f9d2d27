// This tool prints the playback parameters of the passed wav file, plus the
// integer peak amplitude for PCM payloads.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/wavrate"
)

const missingPathMessage = "You must pass the path of the file to inspect"

var errMissingPath = errors.New("missing path argument")

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	dec := wavrate.NewDecoder(file)

	if err := dec.Decode(); err != nil {
		return err
	}

	p := dec.Params
	fmt.Fprintf(out, "Format tag: %d\n", p.FormatTag)
	fmt.Fprintf(out, "Channels: %d\n", p.NumChans)
	fmt.Fprintf(out, "Sample rate: %d Hz\n", p.SampleRate)
	fmt.Fprintf(out, "Bit depth: %d\n", p.BitsPerSample())
	fmt.Fprintf(out, "Frames: %d\n", p.FrameCount)
	fmt.Fprintf(out, "Duration: %s\n", p.Duration())

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		if errors.Is(err, wavrate.ErrUnsupportedFormat) {
			fmt.Fprintln(out, "Peak: n/a (non-PCM payload)")

			return nil
		}

		return err
	}

	fmt.Fprintf(out, "Peak: %d\n", peak(buf.Data))

	return nil
}

func peak(samples []int) int {
	max := 0
	for _, s := range samples {
		if s < 0 {
			s = -s
		}

		if s > max {
			max = s
		}
	}

	return max
}
