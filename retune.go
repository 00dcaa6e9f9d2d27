package wavrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Result describes a completed sample-rate rewrite.
type Result struct {
	Params        Params
	OldSampleRate uint32
	NewSampleRate uint32
	OutputPath    string
}

// OutputPath derives the output file name from the input path and the two
// rates, placing the file in the same directory as the input. For
// "music/input.wav" going from 48000 to 50400 Hz it returns
// "music/input--sample_rate_changed__48000_to_50400.wav".
func OutputPath(inputPath string, oldRate, newRate uint32) string {
	dir, base := filepath.Split(inputPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	return filepath.Join(dir, fmt.Sprintf("%s--sample_rate_changed__%d_to_%d%s", name, oldRate, newRate, ext))
}

// ChangeSampleRateFile reads the WAV file at inputPath and writes a sibling
// file with the same frame bytes and newRate as the sample rate. The output
// file is only created once the input has decoded and the rate has been
// validated.
func ChangeSampleRateFile(inputPath string, newRate int) (*Result, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", inputPath, err)
	}
	defer in.Close()

	dec := NewDecoder(in)

	err = dec.Decode()
	if err != nil {
		return nil, err
	}

	params, err := dec.Params.WithSampleRate(newRate)
	if err != nil {
		return nil, err
	}

	outPath := OutputPath(inputPath, dec.Params.SampleRate, params.SampleRate)

	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outPath, err)
	}

	err = NewEncoder(out).Encode(params, dec.Frames)
	if err != nil {
		out.Close()
		os.Remove(outPath)

		return nil, err
	}

	err = out.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to close %s: %w", outPath, err)
	}

	return &Result{
		Params:        params,
		OldSampleRate: dec.Params.SampleRate,
		NewSampleRate: params.SampleRate,
		OutputPath:    outPath,
	}, nil
}
