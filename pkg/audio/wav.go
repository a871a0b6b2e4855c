package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// DecodeWAV decodes a WAV payload to mono float64 samples in [-1,1] plus the
// file's sample rate. Multi-channel input is mixed down.
func DecodeWAV(data []byte) ([]float64, int, error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))

	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("not a valid wav file")
	}

	buffer, err := decoder.FullPCMBuffer()

	if err != nil {
		return nil, 0, err
	}

	if buffer.Format == nil || buffer.Format.NumChannels <= 0 {
		return nil, 0, fmt.Errorf("missing format information")
	}

	channels := buffer.Format.NumChannels

	depth := buffer.SourceBitDepth

	if depth <= 0 {
		depth = 16
	}

	scale := float64(int(1) << (depth - 1))

	samples := make([]float64, 0, len(buffer.Data)/channels)

	for i := 0; i+channels <= len(buffer.Data); i += channels {
		var sum float64

		for c := 0; c < channels; c++ {
			sum += float64(buffer.Data[i+c]) / scale
		}

		samples = append(samples, sum/float64(channels))
	}

	return samples, buffer.Format.SampleRate, nil
}

// EncodeWAV writes mono float64 samples as 16-bit PCM WAV. Samples outside
// [-1,1] are clipped.
func EncodeWAV(samples []float64, sampleRate int) ([]byte, error) {
	var buffer seekBuffer

	encoder := wav.NewEncoder(&buffer, sampleRate, 16, 1, 1)

	data := make([]int, len(samples))

	for i, sample := range samples {
		if sample > 1 {
			sample = 1
		}

		if sample < -1 {
			sample = -1
		}

		data[i] = int(sample * 32767)
	}

	if err := encoder.Write(&audio.IntBuffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},

		Data:           data,
		SourceBitDepth: 16,
	}); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return buffer.data, nil
}

// Normalize scales samples to a target RMS level in dBFS.
func Normalize(samples []float64, targetDB float64) []float64 {
	var sum float64

	for _, sample := range samples {
		sum += sample * sample
	}

	if sum == 0 {
		return samples
	}

	rms := math.Sqrt(sum / float64(len(samples)))
	gain := math.Pow(10, (targetDB-20*math.Log10(rms))/20)

	out := make([]float64, len(samples))

	for i, sample := range samples {
		value := sample * gain

		if value > 1 {
			value = 1
		}

		if value < -1 {
			value = -1
		}

		out[i] = value
	}

	return out
}

// seekBuffer adapts an in-memory buffer to the encoder's io.WriteSeeker,
// which it needs to patch up chunk sizes after writing.
type seekBuffer struct {
	data []byte
	pos  int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.data) {
		grown := make([]byte, need)
		copy(grown, b.data)
		b.data = grown
	}

	copy(b.data[b.pos:], p)
	b.pos += len(p)

	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64

	switch whence {
	case io.SeekStart:
		pos = offset

	case io.SeekCurrent:
		pos = int64(b.pos) + offset

	case io.SeekEnd:
		pos = int64(len(b.data)) + offset

	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}

	if pos < 0 {
		return 0, fmt.Errorf("negative position")
	}

	b.pos = int(pos)

	return pos, nil
}
