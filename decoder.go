package wavrate

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

var (
	// ErrMalformedContainer is returned when the input is not a parseable
	// RIFF/WAVE container.
	ErrMalformedContainer = errors.New("malformed RIFF/WAVE container")
	// ErrFmtChunkNotFound is returned when the stream ends before a fmt
	// chunk is seen.
	ErrFmtChunkNotFound = errors.New("fmt chunk not found in audio file")
	// ErrDataChunkNotFound is returned when the stream ends before a data
	// chunk is seen.
	ErrDataChunkNotFound = errors.New("data chunk not found in audio file")
	// ErrTruncatedData is returned when the data chunk declares more bytes
	// than the stream holds.
	ErrTruncatedData = errors.New("data chunk truncated")
)

// Decoder reads a complete RIFF/WAVE stream into Params and the raw frame
// payload. The payload is held in memory in full, which bounds practical
// input size to available memory.
type Decoder struct {
	r      io.ReadSeeker
	parser *riff.Parser

	// Params holds the parsed header fields after a successful Decode.
	Params Params
	// Frames holds the raw data chunk payload after a successful Decode.
	// It is never interpreted or mutated.
	Frames []byte

	decoded bool
}

// NewDecoder creates a decoder for the passed wav reader.
// Note that the reader doesn't get rewinded as the container is processed.
func NewDecoder(r io.ReadSeeker) *Decoder {
	return &Decoder{
		r:      r,
		parser: riff.New(r),
	}
}

// Decode parses the container until both the fmt and data chunks have been
// read, skipping any other chunks between them. The fmt and data chunks may
// appear in either order. Decode is safe to call multiple times.
func (d *Decoder) Decode() error {
	if d.decoded {
		return nil
	}

	err := d.readRIFFHeader()
	if err != nil {
		return err
	}

	var haveFmt, haveData bool

	for !haveFmt || !haveData {
		id, size, err := d.parser.IDnSize()
		if err != nil {
			if isEOF(err) {
				if !haveFmt {
					return ErrFmtChunkNotFound
				}

				return ErrDataChunkNotFound
			}

			return fmt.Errorf("error reading chunk header - %w", err)
		}

		switch id {
		case riff.FmtID:
			err = d.decodeFmtChunk(size)
			haveFmt = true
		case riff.DataFormatID:
			err = d.readFrames(size)
			haveData = true
		default:
			err = d.skipChunk(size)
			if isEOF(err) {
				// the chunk walked off the end of the stream, so the
				// remaining required chunk can't follow
				if !haveFmt {
					return ErrFmtChunkNotFound
				}

				return ErrDataChunkNotFound
			}
		}

		if err != nil {
			return err
		}
	}

	frameSize := int(d.Params.BlockAlign())
	if frameSize == 0 || len(d.Frames)%frameSize != 0 {
		return fmt.Errorf("%w: %d payload bytes don't align to %d byte frames",
			ErrMalformedContainer, len(d.Frames), frameSize)
	}

	d.Params.FrameCount = uint32(len(d.Frames) / frameSize)
	d.decoded = true

	return nil
}

// readRIFFHeader validates the RIFF tag and the WAVE form type.
func (d *Decoder) readRIFFHeader() error {
	id, size, err := d.parser.IDnSize()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedContainer, err)
	}

	d.parser.ID = id
	if d.parser.ID != riff.RiffID {
		return fmt.Errorf("%w: %q is not a RIFF tag", ErrMalformedContainer, string(id[:]))
	}

	d.parser.Size = size

	err = binary.Read(d.r, binary.BigEndian, &d.parser.Format)
	if err != nil {
		return fmt.Errorf("%w: missing form type", ErrMalformedContainer)
	}

	if d.parser.Format != riff.WavFormatID {
		return fmt.Errorf("%w: %q is not a WAVE form", ErrMalformedContainer, string(d.parser.Format[:]))
	}

	return nil
}

func (d *Decoder) decodeFmtChunk(size uint32) error {
	chunk := &riff.Chunk{
		ID:   riff.FmtID,
		Size: int(size),
		R:    io.LimitReader(d.r, int64(size)),
	}

	var (
		formatTag, numChans        uint16
		blockAlign, bitsPerSample  uint16
		sampleRate, avgBytesPerSec uint32
	)

	for _, dst := range []any{
		&formatTag, &numChans, &sampleRate, &avgBytesPerSec, &blockAlign, &bitsPerSample,
	} {
		err := chunk.ReadLE(dst)
		if err != nil {
			return fmt.Errorf("%w: short fmt chunk", ErrMalformedContainer)
		}
	}

	d.Params.FormatTag = formatTag
	d.Params.NumChans = numChans
	d.Params.SampleRate = sampleRate
	d.Params.BytesPerSample = bytesPerSample(int(bitsPerSample))

	if size > 16 {
		var extraSize uint16

		err := chunk.ReadLE(&extraSize)
		if err != nil {
			return fmt.Errorf("%w: short fmt extension", ErrMalformedContainer)
		}

		d.Params.ExtraData = make([]byte, extraSize)
		if extraSize > 0 {
			err = chunk.ReadLE(&d.Params.ExtraData)
			if err != nil {
				return fmt.Errorf("%w: short fmt extension data", ErrMalformedContainer)
			}
		}
	}

	chunk.Drain()

	return d.skipPadByte(size)
}

func (d *Decoder) readFrames(size uint32) error {
	frames := make([]byte, int(size))

	n, err := io.ReadFull(d.r, frames)
	if err != nil {
		if isEOF(err) {
			return fmt.Errorf("%w: declared %d bytes, stream holds %d", ErrTruncatedData, size, n)
		}

		return fmt.Errorf("failed to read data chunk: %w", err)
	}

	d.Frames = frames

	// the pad byte may legitimately be missing on the last chunk
	if err := d.skipPadByte(size); err != nil && !isEOF(err) {
		return err
	}

	return nil
}

func (d *Decoder) skipChunk(size uint32) error {
	padded := int64(size) + int64(size%2)

	_, err := io.CopyN(io.Discard, d.r, padded)
	if err != nil {
		return err
	}

	return nil
}

// all RIFF chunks must be word aligned: an odd-sized payload is followed by
// a zero pad byte that is not counted in the chunk size.
func (d *Decoder) skipPadByte(size uint32) error {
	if size%2 == 0 {
		return nil
	}

	_, err := io.CopyN(io.Discard, d.r, 1)
	if err != nil {
		return err
	}

	return nil
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

func bytesPerSample(bitDepth int) uint16 {
	if bitDepth <= 0 {
		return 0
	}

	return uint16((bitDepth-1)/8 + 1)
}
