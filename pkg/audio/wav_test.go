package audio

import (
	"math"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	samples := make([]float64, 4800)

	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/48000)
	}

	data, err := EncodeWAV(samples, 48000)

	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, rate, err := DecodeWAV(data)

	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if rate != 48000 {
		t.Fatalf("expected 48000Hz, got %d", rate)
	}

	if len(decoded) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(decoded))
	}

	for i := 0; i < len(samples); i += 100 {
		if math.Abs(decoded[i]-samples[i]) > 0.001 {
			t.Fatalf("sample %d: expected %.4f, got %.4f", i, samples[i], decoded[i])
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, _, err := DecodeWAV([]byte("definitely not audio")); err == nil {
		t.Fatal("expected error for junk input")
	}
}

func TestNormalize(t *testing.T) {
	samples := make([]float64, 4800)

	for i := range samples {
		samples[i] = 0.01 * math.Sin(2*math.Pi*440*float64(i)/48000)
	}

	out := Normalize(samples, -20)

	var sum float64

	for _, s := range out {
		sum += s * s
	}

	db := 20 * math.Log10(math.Sqrt(sum/float64(len(out))))

	if math.Abs(db+20) > 0.5 {
		t.Fatalf("expected -20dB RMS, got %.2f", db)
	}
}
