package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cantuslab/cantus/pkg/lyric"
	"github.com/cantuslab/cantus/pkg/note"
	"github.com/cantuslab/cantus/pkg/plan"
	"github.com/cantuslab/cantus/pkg/prompt"
	"github.com/cantuslab/cantus/pkg/provider"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// State tracks a single request through the pipeline. Requests are
// independent; the orchestrator itself holds no mutable state.
type State string

const (
	StateIdle         State = "idle"
	StateValidating   State = "validating"
	StatePlanning     State = "planning"
	StateReady        State = "ready"
	StateSynthesizing State = "synthesizing"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

type AnalysisTimeoutError struct {
	Budget time.Duration
}

func (e *AnalysisTimeoutError) Error() string {
	return fmt.Sprintf("prompt analysis exceeded budget of %s", e.Budget)
}

type Request struct {
	Lyrics     string
	NoteTokens string

	PromptSamples []float64
	SampleRate    int

	// Durations optionally overrides the planner's base duration, one value
	// per note token.
	Durations []float64
}

type Config struct {
	Tokenizer *lyric.Tokenizer
	Analyzer  *prompt.Analyzer
	Planner   *plan.Planner

	Synthesizer provider.Synthesizer

	AnalysisTimeout time.Duration
}

type Orchestrator struct {
	tokenizer lyric.Tokenizer
	analyzer  prompt.Analyzer
	planner   plan.Planner

	synthesizer provider.Synthesizer

	analysisTimeout time.Duration
}

func New(cfg *Config) *Orchestrator {
	if cfg == nil {
		cfg = new(Config)
	}

	o := &Orchestrator{
		tokenizer: lyric.NewTokenizer(),
		analyzer:  prompt.NewAnalyzer(),
		planner:   plan.NewPlanner(),

		synthesizer: cfg.Synthesizer,

		analysisTimeout: 10 * time.Second,
	}

	if cfg.Tokenizer != nil {
		o.tokenizer = *cfg.Tokenizer
	}

	if cfg.Analyzer != nil {
		o.analyzer = *cfg.Analyzer
	}

	if cfg.Planner != nil {
		o.planner = *cfg.Planner
	}

	if cfg.AnalysisTimeout > 0 {
		o.analysisTimeout = cfg.AnalysisTimeout
	}

	return o
}

// Submit validates and aligns one request into a synthesis plan. The
// tokenizer, parser and analyzer have no data dependency and run
// concurrently; the planner joins their results. The first failure wins and
// the downstream provider is never invoked.
func (o *Orchestrator) Submit(ctx context.Context, request Request) (*plan.Plan, error) {
	id := uuid.NewString()

	log := slog.With("request", id)

	state := StateIdle
	transition := func(next State) {
		log.Debug("synthesis request", "from", state, "to", next)
		state = next
	}

	transition(StateValidating)

	var units []lyric.Unit
	var events []note.Event
	var style *prompt.StyleDescriptor

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		result, err := o.tokenizer.Tokenize(request.Lyrics)

		units = result
		return err
	})

	group.Go(func() error {
		result, err := note.ParseString(request.NoteTokens)

		events = result
		return err
	})

	group.Go(func() error {
		analysisCtx, cancel := context.WithTimeout(groupCtx, o.analysisTimeout)
		defer cancel()

		result, err := o.analyzer.Analyze(analysisCtx, request.PromptSamples, request.SampleRate)

		if errors.Is(err, context.DeadlineExceeded) && groupCtx.Err() == nil {
			err = &AnalysisTimeoutError{Budget: o.analysisTimeout}
		}

		style = result
		return err
	})

	if err := group.Wait(); err != nil {
		transition(StateFailed)
		return nil, err
	}

	transition(StatePlanning)

	result, err := o.planner.PlanWithDurations(events, units, style, request.Durations)

	if err != nil {
		transition(StateFailed)
		return nil, err
	}

	result.RequestID = id

	transition(StateReady)

	log.Info("plan ready", "frames", len(result.Frames), "duration", result.DurationSeconds())

	return result, nil
}

// Synthesize runs Submit and hands the finished plan to the configured
// synthesizer provider.
func (o *Orchestrator) Synthesize(ctx context.Context, request Request, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if o.synthesizer == nil {
		return nil, fmt.Errorf("no synthesizer configured")
	}

	result, err := o.Submit(ctx, request)

	if err != nil {
		return nil, err
	}

	log := slog.With("request", result.RequestID)
	log.Debug("synthesis request", "from", StateReady, "to", StateSynthesizing)

	synthesis, err := o.synthesizer.Synthesize(ctx, result, options)

	if err != nil {
		log.Debug("synthesis request", "from", StateSynthesizing, "to", StateFailed)
		return nil, err
	}

	log.Debug("synthesis request", "from", StateSynthesizing, "to", StateDone)

	return synthesis, nil
}
