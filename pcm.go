package wavrate

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
)

var (
	// ErrUnsupportedFormat is returned when sample decoding is requested
	// for a compression code the package can't interpret. The rewrite path
	// never decodes samples, so such files can still be rewritten.
	ErrUnsupportedFormat  = errors.New("unsupported wav format for sample decoding")
	errUnhandledByteDepth = errors.New("unhandled byte depth")
)

// FullPCMBuffer decodes the frame payload into integer samples. Only linear
// PCM payloads are supported; this exists to verify pass-through results,
// not to feed the rewrite.
func (d *Decoder) FullPCMBuffer() (*audio.IntBuffer, error) {
	err := d.Decode()
	if err != nil {
		return nil, err
	}

	if d.Params.FormatTag != FormatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, d.Params.FormatTag)
	}

	decodeF, err := sampleDecodeFunc(int(d.Params.BitsPerSample()))
	if err != nil {
		return nil, err
	}

	buf := &audio.IntBuffer{
		Format:         d.Params.Format(),
		SourceBitDepth: int(d.Params.BitsPerSample()),
		Data:           make([]int, int(d.Params.FrameCount)*int(d.Params.NumChans)),
	}

	r := bytes.NewReader(d.Frames)
	sampleBuf := make([]byte, 4)

	for i := range buf.Data {
		buf.Data[i], err = decodeF(r, sampleBuf)
		if err != nil {
			return nil, fmt.Errorf("failed to decode sample %d: %w", i, err)
		}
	}

	return buf, nil
}

// sampleDecodeFunc returns a function that can be used to convert
// a byte range into an int value based on the amount of bits used per sample.
// Note that 8bit samples are unsigned, all other values are signed.
func sampleDecodeFunc(bitsPerSample int) (func(io.Reader, []byte) (int, error), error) {
	// NOTE: WAV PCM data is stored using little-endian
	switch bitsPerSample {
	case 8:
		// 8bit values are unsigned
		return func(r io.Reader, buf []byte) (int, error) {
			_, err := io.ReadFull(r, buf[:1])
			return int(buf[0]), err
		}, nil
	case 16:
		return func(r io.Reader, buf []byte) (int, error) {
			_, err := io.ReadFull(r, buf[:2])
			return int(int16(binary.LittleEndian.Uint16(buf[:2]))), err
		}, nil
	case 24:
		return func(r io.Reader, buf []byte) (int, error) {
			_, err := io.ReadFull(r, buf[:3])
			if err != nil {
				return 0, fmt.Errorf("failed to read 24-bit sample: %w", err)
			}

			return int(audio.Int24LETo32(buf[:3])), nil
		}, nil
	case 32:
		return func(r io.Reader, buf []byte) (int, error) {
			_, err := io.ReadFull(r, buf[:4])
			return int(int32(binary.LittleEndian.Uint32(buf[:4]))), err
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d", errUnhandledByteDepth, bitsPerSample)
	}
}
