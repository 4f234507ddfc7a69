package normalizer

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Format describes the PCM layout read from a WAV file header
type Format struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
}

// ProbeWAV reads the RIFF header of the file and returns its PCM format.
// ffmpeg may emit LIST/INFO chunks ahead of the data chunk, so the fmt chunk
// is located by scanning rather than assuming a fixed 44-byte layout.
func ProbeWAV(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Format{}, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	var riff [12]byte
	if _, err := io.ReadFull(f, riff[:]); err != nil {
		return Format{}, fmt.Errorf("read RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return Format{}, fmt.Errorf("not a RIFF/WAVE file")
	}

	for {
		var chunk [8]byte
		if _, err := io.ReadFull(f, chunk[:]); err != nil {
			return Format{}, fmt.Errorf("fmt chunk not found")
		}
		chunkID := string(chunk[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunk[4:8])

		if chunkID != "fmt " {
			// Chunks are word-aligned; skip payload plus pad byte
			skip := int64(chunkSize)
			if chunkSize%2 == 1 {
				skip++
			}
			if _, err := f.Seek(skip, io.SeekCurrent); err != nil {
				return Format{}, fmt.Errorf("seek past %q chunk: %w", chunkID, err)
			}
			continue
		}

		if chunkSize < 16 {
			return Format{}, fmt.Errorf("fmt chunk too short: %d bytes", chunkSize)
		}
		var fmtChunk [16]byte
		if _, err := io.ReadFull(f, fmtChunk[:]); err != nil {
			return Format{}, fmt.Errorf("read fmt chunk: %w", err)
		}

		return Format{
			Channels:      int(binary.LittleEndian.Uint16(fmtChunk[2:4])),
			SampleRate:    int(binary.LittleEndian.Uint32(fmtChunk[4:8])),
			BitsPerSample: int(binary.LittleEndian.Uint16(fmtChunk[14:16])),
		}, nil
	}
}
