package speech

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeWAV builds a 16-bit mono PCM WAV of the given length at 8 kHz.
func makeWAV(t *testing.T, length time.Duration, extraChunk bool) []byte {
	t.Helper()
	const sampleRate = 8000
	const byteRate = sampleRate * 2
	dataSize := uint32(length.Seconds() * byteRate)

	var buf bytes.Buffer
	w := func(v any) { require.NoError(t, binary.Write(&buf, binary.LittleEndian, v)) }

	buf.WriteString("RIFF")
	w(uint32(0))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	w(uint32(16))
	w(uint16(1))          // PCM
	w(uint16(1))          // channels
	w(uint32(sampleRate)) // sample rate
	w(uint32(byteRate))   // byte rate
	w(uint16(2))          // block align
	w(uint16(16))         // bits per sample
	if extraChunk {
		buf.WriteString("LIST")
		w(uint32(3))
		buf.Write([]byte{1, 2, 3, 0})
	}
	buf.WriteString("data")
	w(dataSize)
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

func TestWAVDuration(t *testing.T) {
	d, err := WAVDuration(bytes.NewReader(makeWAV(t, 12*time.Second, false)))
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, d)

	d, err = WAVDuration(bytes.NewReader(makeWAV(t, 1500*time.Millisecond, true)))
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d)
}

func TestWAVDuration_NotWAV(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"mp3", []byte("ID3\x03\x00\x00\x00\x00\x00\x00\x00\x00\x00")},
		{"riff without chunks", []byte("RIFF\x00\x00\x00\x00WAVE")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WAVDuration(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, ErrNotWAV)
		})
	}
}
