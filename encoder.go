package wavrate

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// ErrFrameSizeMismatch is returned when a frame payload length disagrees
// with the parameters it is being written under.
var ErrFrameSizeMismatch = errors.New("frame payload length disagrees with parameters")

// Encoder writes a canonical RIFF/WAVE container from Params and a frame
// payload. All sizes are known up front, so the stream is written in a
// single pass with no seeking back.
type Encoder struct {
	w io.Writer

	WrittenBytes int
}

// NewEncoder creates a new encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// AddLE serializes and adds the passed value using little endian.
func (e *Encoder) AddLE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	return nil
}

// AddBE serializes and adds the passed value using big endian.
func (e *Encoder) AddBE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.BigEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write big endian: %w", err)
	}

	return nil
}

// fmtChunkSize returns the declared fmt chunk size for p: the canonical 16
// bytes, plus the 2-byte extension size prefix and the extension itself when
// extra bytes are carried.
func fmtChunkSize(p Params) uint32 {
	if len(p.ExtraData) == 0 {
		return 16
	}

	return 16 + 2 + uint32(len(p.ExtraData))
}

// Encode writes the full container: RIFF header, fmt chunk, data chunk. The
// frame bytes are copied without alteration. The payload length must equal
// p.DataSize().
func (e *Encoder) Encode(p Params, frames []byte) error {
	if len(frames) != int(p.DataSize()) {
		return fmt.Errorf("%w: %d bytes for %d frames of %d bytes each",
			ErrFrameSizeMismatch, len(frames), p.FrameCount, p.BlockAlign())
	}

	fmtSize := fmtChunkSize(p)
	dataSize := uint32(len(frames))
	// "WAVE" + both chunk headers + both padded payloads; this is the
	// canonical 36 + data length when the fmt chunk carries no extras
	riffSize := 4 + (8 + fmtSize + fmtSize%2) + (8 + dataSize + dataSize%2)

	err := e.AddLE(riff.RiffID)
	if err != nil {
		return err
	}

	err = e.AddLE(riffSize)
	if err != nil {
		return err
	}

	err = e.AddLE(riff.WavFormatID)
	if err != nil {
		return err
	}

	err = e.writeFmtChunk(p, fmtSize)
	if err != nil {
		return err
	}

	return e.writeDataChunk(frames, dataSize)
}

func (e *Encoder) writeFmtChunk(p Params, fmtSize uint32) error {
	err := e.AddLE(riff.FmtID)
	if err != nil {
		return err
	}

	err = e.AddLE(fmtSize)
	if err != nil {
		return err
	}

	err = e.AddLE(p.FormatTag)
	if err != nil {
		return fmt.Errorf("error encoding the format tag - %w", err)
	}

	err = e.AddLE(p.NumChans)
	if err != nil {
		return fmt.Errorf("error encoding the number of channels - %w", err)
	}

	err = e.AddLE(p.SampleRate)
	if err != nil {
		return fmt.Errorf("error encoding the sample rate - %w", err)
	}

	err = e.AddLE(p.AvgBytesPerSec())
	if err != nil {
		return fmt.Errorf("error encoding the avg bytes per sec - %w", err)
	}

	err = e.AddLE(p.BlockAlign())
	if err != nil {
		return err
	}

	err = e.AddLE(p.BitsPerSample())
	if err != nil {
		return fmt.Errorf("error encoding bits per sample - %w", err)
	}

	if len(p.ExtraData) == 0 {
		return nil
	}

	err = e.AddLE(uint16(len(p.ExtraData)))
	if err != nil {
		return fmt.Errorf("error encoding fmt extension length - %w", err)
	}

	n, err := e.w.Write(p.ExtraData)
	e.WrittenBytes += n

	if err != nil {
		return fmt.Errorf("error encoding fmt extension data - %w", err)
	}

	return e.writePadByte(fmtSize)
}

func (e *Encoder) writeDataChunk(frames []byte, dataSize uint32) error {
	err := e.AddLE(riff.DataFormatID)
	if err != nil {
		return fmt.Errorf("error encoding data chunk header - %w", err)
	}

	err = e.AddLE(dataSize)
	if err != nil {
		return fmt.Errorf("error encoding data chunk size - %w", err)
	}

	n, err := e.w.Write(frames)
	e.WrittenBytes += n

	if err != nil {
		return fmt.Errorf("failed to write frame payload: %w", err)
	}

	return e.writePadByte(dataSize)
}

// writePadByte keeps chunks word aligned; the pad byte is not counted in the
// declared chunk size.
func (e *Encoder) writePadByte(size uint32) error {
	if size%2 == 0 {
		return nil
	}

	n, err := e.w.Write([]byte{0})
	e.WrittenBytes += n

	if err != nil {
		return fmt.Errorf("failed to write chunk padding: %w", err)
	}

	return nil
}
