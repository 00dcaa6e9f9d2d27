package wavrate

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-audio/audio"
)

// FormatPCM is the fmt chunk compression code for linear PCM.
const FormatPCM uint16 = 1

// ErrInvalidSampleRate is returned when a requested sample rate is not a
// positive number of Hz.
var ErrInvalidSampleRate = errors.New("invalid sample rate")

// Params describes a decoded WAV file: the canonical playback fields plus
// the passthrough fields needed to write a byte-compatible header.
type Params struct {
	NumChans       uint16
	BytesPerSample uint16
	SampleRate     uint32
	FrameCount     uint32

	// FormatTag is the compression code carried verbatim from the source
	// fmt chunk.
	FormatTag uint16
	// ExtraData holds any fmt chunk bytes past the canonical 16, carried
	// verbatim. This covers WAVE_FORMAT_EXTENSIBLE payloads.
	ExtraData []byte
}

// BitsPerSample returns the stored sample width in bits.
func (p Params) BitsPerSample() uint16 {
	return p.BytesPerSample * 8
}

// BlockAlign returns the size of one frame in bytes.
func (p Params) BlockAlign() uint16 {
	return p.NumChans * p.BytesPerSample
}

// AvgBytesPerSec returns the byte rate implied by the sample rate and frame
// size.
func (p Params) AvgBytesPerSec() uint32 {
	return p.SampleRate * uint32(p.BlockAlign())
}

// DataSize returns the expected frame payload length in bytes.
func (p Params) DataSize() uint32 {
	return p.FrameCount * uint32(p.BlockAlign())
}

// Duration returns the playback duration at the current sample rate.
func (p Params) Duration() time.Duration {
	if p.SampleRate == 0 {
		return 0
	}

	return time.Duration(float64(p.FrameCount) / float64(p.SampleRate) * float64(time.Second))
}

// Format returns the audio format of the described content.
func (p Params) Format() *audio.Format {
	return &audio.Format{
		NumChannels: int(p.NumChans),
		SampleRate:  int(p.SampleRate),
	}
}

// Clone returns a deep copy of p.
func (p Params) Clone() Params {
	out := p
	out.ExtraData = append([]byte(nil), p.ExtraData...)

	return out
}

// WithSampleRate returns a copy of p that plays back at rate Hz. Every other
// field is unchanged. The rate must be positive.
func (p Params) WithSampleRate(rate int) (Params, error) {
	if rate <= 0 {
		return Params{}, fmt.Errorf("%w: must be a positive number of Hz, got %d", ErrInvalidSampleRate, rate)
	}

	out := p.Clone()
	out.SampleRate = uint32(rate)

	return out, nil
}
