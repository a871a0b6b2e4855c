package orchestrator

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/cantuslab/cantus/pkg/lyric"
	"github.com/cantuslab/cantus/pkg/note"
	"github.com/cantuslab/cantus/pkg/plan"
	"github.com/cantuslab/cantus/pkg/prompt"
	"github.com/cantuslab/cantus/pkg/provider/placeholder"

	"github.com/stretchr/testify/require"
)

const testRate = 8000

func testPrompt(seconds float64) []float64 {
	samples := make([]float64, int(seconds*testRate))

	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*220*float64(i)/testRate)
	}

	return samples
}

func testRequest() Request {
	return Request{
		Lyrics:     "hello world demo",
		NoteTokens: "C4 rest E4 G4",

		PromptSamples: testPrompt(5),
		SampleRate:    testRate,
	}
}

func TestSubmit(t *testing.T) {
	o := New(nil)

	result, err := o.Submit(context.Background(), testRequest())
	require.NoError(t, err)

	require.NotEmpty(t, result.RequestID)
	require.Len(t, result.Frames, 4)

	require.Equal(t, "hello", result.Frames[0].Phoneme)
	require.True(t, result.Frames[1].Rest)
	require.Equal(t, "world", result.Frames[2].Phoneme)
	require.Equal(t, "demo", result.Frames[3].Phoneme)

	require.NotNil(t, result.Frames[0].Style)
	require.InDelta(t, 5, result.Frames[0].Style.DurationSeconds, 0.01)
}

func TestSubmitErrors(t *testing.T) {
	o := New(nil)
	ctx := context.Background()

	t.Run("empty lyrics", func(t *testing.T) {
		request := testRequest()
		request.Lyrics = "   "

		_, err := o.Submit(ctx, request)

		var target *lyric.EmptyLyricsError
		require.ErrorAs(t, err, &target)
	})

	t.Run("malformed note", func(t *testing.T) {
		request := testRequest()
		request.NoteTokens = "C4 X9 E4"

		_, err := o.Submit(ctx, request)

		var target *note.MalformedNoteError
		require.ErrorAs(t, err, &target)
		require.Equal(t, 1, target.Index)
	})

	t.Run("short prompt", func(t *testing.T) {
		request := testRequest()
		request.PromptSamples = testPrompt(2)

		_, err := o.Submit(ctx, request)

		var target *prompt.PromptDurationError
		require.ErrorAs(t, err, &target)
	})

	t.Run("silent prompt", func(t *testing.T) {
		request := testRequest()
		request.PromptSamples = make([]float64, 5*testRate)

		_, err := o.Submit(ctx, request)

		var target *prompt.SilentPromptError
		require.ErrorAs(t, err, &target)
	})

	t.Run("alignment mismatch", func(t *testing.T) {
		request := testRequest()
		request.Lyrics = "hello world"
		request.NoteTokens = "C4 D4 E4"

		_, err := o.Submit(ctx, request)

		var target *plan.AlignmentMismatchError
		require.ErrorAs(t, err, &target)
		require.Equal(t, 3, target.Notes)
		require.Equal(t, 2, target.Units)
	})
}

func TestSubmitAnalysisTimeout(t *testing.T) {
	o := New(&Config{
		AnalysisTimeout: time.Nanosecond,
	})

	_, err := o.Submit(context.Background(), testRequest())

	var target *AnalysisTimeoutError
	require.ErrorAs(t, err, &target)
	require.Equal(t, time.Nanosecond, target.Budget)
}

func TestSubmitCancelled(t *testing.T) {
	o := New(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Submit(ctx, testRequest())
	require.Error(t, err)
}

func TestSubmitIdempotent(t *testing.T) {
	o := New(nil)
	ctx := context.Background()

	first, err := o.Submit(ctx, testRequest())
	require.NoError(t, err)

	second, err := o.Submit(ctx, testRequest())
	require.NoError(t, err)

	require.Equal(t, len(first.Frames), len(second.Frames))

	for i := range first.Frames {
		require.Equal(t, first.Frames[i].Phoneme, second.Frames[i].Phoneme)
		require.Equal(t, first.Frames[i].Pitch, second.Frames[i].Pitch)
		require.Equal(t, first.Frames[i].DurationSeconds, second.Frames[i].DurationSeconds)
	}
}

func TestSynthesize(t *testing.T) {
	synthesizer, err := placeholder.NewSynthesizer("placeholder", placeholder.WithSampleRate(testRate))
	require.NoError(t, err)

	o := New(&Config{
		Synthesizer: synthesizer,
	})

	synthesis, err := o.Synthesize(context.Background(), testRequest(), nil)
	require.NoError(t, err)

	require.Equal(t, "audio/wav", synthesis.ContentType)
	require.NotEmpty(t, synthesis.Content)
}

func TestSynthesizeUnconfigured(t *testing.T) {
	o := New(nil)

	_, err := o.Synthesize(context.Background(), testRequest(), nil)
	require.Error(t, err)
}
