package speech

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrNotWAV is returned for data that is not a RIFF/WAVE stream.
var ErrNotWAV = errors.New("not a WAV file")

// WAVDuration reads the RIFF header of r and returns the audio length.
func WAVDuration(r io.Reader) (time.Duration, error) {
	var hdr [12]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotWAV, err)
	}
	if string(hdr[0:4]) != "RIFF" || string(hdr[8:12]) != "WAVE" {
		return 0, ErrNotWAV
	}

	var byteRate uint32
	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			return 0, fmt.Errorf("%w: missing data chunk", ErrNotWAV)
		}
		id := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			fmtChunk := make([]byte, size)
			if _, err := io.ReadFull(r, fmtChunk); err != nil || size < 16 {
				return 0, fmt.Errorf("%w: short fmt chunk", ErrNotWAV)
			}
			byteRate = binary.LittleEndian.Uint32(fmtChunk[8:12])
			if size%2 == 1 {
				_, _ = io.CopyN(io.Discard, r, 1)
			}
		case "data":
			if byteRate == 0 {
				return 0, fmt.Errorf("%w: data before fmt", ErrNotWAV)
			}
			return time.Duration(float64(size) / float64(byteRate) * float64(time.Second)), nil
		default:
			skip := int64(size) + int64(size%2)
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				return 0, fmt.Errorf("%w: truncated %q chunk", ErrNotWAV, id)
			}
		}
	}
}
