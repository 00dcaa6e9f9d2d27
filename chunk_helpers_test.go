package wavrate

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

type chunkInventoryEntry struct {
	id   string
	size uint32
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidRiffWaveHdr   = errors.New("invalid riff/wave header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

// parseWavChunks walks raw container bytes independently of the decoder so
// tests can assert on what was actually emitted.
func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errInvalidRiffWaveHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func parseWavChunksFromFile(path string) ([]testChunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return parseWavChunks(data)
}

func findChunk(chunks []testChunk, id string) (*testChunk, int) {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i], i
		}
	}

	return nil, -1
}

func buildChunkInventory(chunks []testChunk) []chunkInventoryEntry {
	out := make([]chunkInventoryEntry, 0, len(chunks))
	for _, ch := range chunks {
		out = append(out, chunkInventoryEntry{id: ch.id, size: ch.size})
	}

	return out
}

// buildRiff assembles a container from explicit chunks. The declared size of
// each chunk is taken from the size field, not the payload length, so tests
// can describe truncated files.
func buildRiff(form string, chunks ...testChunk) []byte {
	var body []byte

	for _, ch := range chunks {
		body = append(body, ch.id...)
		body = binary.LittleEndian.AppendUint32(body, ch.size)
		body = append(body, ch.data...)

		if len(ch.data)%2 == 1 && ch.size == uint32(len(ch.data)) {
			body = append(body, 0)
		}
	}

	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(4+len(body)))
	out = append(out, form...)

	return append(out, body...)
}

func fmtChunkData(formatTag, numChans uint16, sampleRate uint32, bitsPerSample uint16, extra []byte) []byte {
	blockAlign := numChans * bitsPerSample / 8

	var out []byte
	out = binary.LittleEndian.AppendUint16(out, formatTag)
	out = binary.LittleEndian.AppendUint16(out, numChans)
	out = binary.LittleEndian.AppendUint32(out, sampleRate)
	out = binary.LittleEndian.AppendUint32(out, sampleRate*uint32(blockAlign))
	out = binary.LittleEndian.AppendUint16(out, blockAlign)
	out = binary.LittleEndian.AppendUint16(out, bitsPerSample)

	if extra != nil {
		out = binary.LittleEndian.AppendUint16(out, uint16(len(extra)))
		out = append(out, extra...)
	}

	return out
}

func monoFmtChunk(sampleRate uint32) testChunk {
	data := fmtChunkData(FormatPCM, 1, sampleRate, 16, nil)

	return testChunk{id: "fmt ", size: uint32(len(data)), data: data}
}

// int16Frames encodes the passed samples as little-endian mono 16-bit frames.
func int16Frames(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}

	return out
}

func dataChunk(frames []byte) testChunk {
	return testChunk{id: "data", size: uint32(len(frames)), data: frames}
}
