// This tool copies a WAV file while changing only the sample rate stored in
// its header, so the result plays the same samples at a shifted tempo and
// pitch. The output lands next to the input with a suffix naming both rates.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/cwbudde/wavrate"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

var errRateNotInteger = errors.New("the sample rate must be an integer")

func rootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ratewav <input.wav> <new-sample-rate>",
		Short: "Change the sample rate of a WAV file without resampling",
		Long: "ratewav rewrites the sample-rate field of a WAV file's header while\n" +
			"copying every sample byte verbatim, mimicking the pitch control of a\n" +
			"turntable: raising 48000 Hz to 50400 Hz speeds playback up by 5%.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// usage stays on arg-count errors but not on runtime failures
			cmd.SilenceUsage = true

			rate, err := strconv.Atoi(args[1])
			if err != nil {
				return errRateNotInteger
			}

			res, err := wavrate.ChangeSampleRateFile(args[0], rate)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sample rate changed from %d Hz to %d Hz and saved as %s\n",
				res.OldSampleRate, res.NewSampleRate, res.OutputPath)

			return nil
		},
	}
}
