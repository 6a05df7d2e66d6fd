package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// DefaultSampleRate matches the PCM16LE mono clips the gateway moves around.
const DefaultSampleRate = 16000

// EncodeWAVPCM16LE wraps raw PCM16LE mono audio bytes in a WAV container.
func EncodeWAVPCM16LE(pcm []byte, sampleRate int) []byte {
	const (
		numChannels   = 1
		bitsPerSample = 16
		audioFormat   = 1 // PCM
	)
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	dataSize := uint32(len(pcm))
	byteRate := uint32(sampleRate * numChannels * bitsPerSample / 8)
	blockAlign := uint16(numChannels * bitsPerSample / 8)

	var buf bytes.Buffer
	buf.Grow(44 + len(pcm))

	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36)+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(audioFormat))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(numChannels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, byteRate)
	_ = binary.Write(&buf, binary.LittleEndian, blockAlign)
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(pcm)

	return buf.Bytes()
}

// ExtractPCM strips the WAV/RIFF container and returns the raw PCM payload.
// Non-WAV input is returned unchanged so opaque vendor blobs that are already
// raw PCM still play.
func ExtractPCM(blob []byte) ([]byte, error) {
	if len(blob) < 12 || string(blob[0:4]) != "RIFF" || string(blob[8:12]) != "WAVE" {
		return blob, nil
	}

	// Walk chunks to find the "data" chunk. Chunks are word-aligned.
	pos := 12
	for pos+8 <= len(blob) {
		chunkID := string(blob[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(blob[pos+4 : pos+8]))
		if chunkSize < 0 {
			return nil, errors.New("malformed WAV chunk size")
		}

		if chunkID == "data" {
			start := pos + 8
			end := start + chunkSize
			if end > len(blob) {
				end = len(blob)
			}
			return blob[start:end], nil
		}

		pos += 8 + chunkSize
		if chunkSize%2 != 0 {
			pos++
		}
	}

	return nil, errors.New("data chunk not found in WAV")
}
