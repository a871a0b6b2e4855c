package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cantuslab/cantus/pkg/client"
)

func main() {
	urlFlag := flag.String("url", "http://localhost:8080", "server url")
	tokenFlag := flag.String("token", "", "server token")
	modelFlag := flag.String("model", "", "model id")

	lyricsFlag := flag.String("lyrics", "Hello world, this is a singing voice synthesis demo", "lyric text")
	notesFlag := flag.String("notes", "C4 D4 E4 F4 G4 A4 B4 C5", "note tokens")
	promptFlag := flag.String("prompt", "", "prompt wav file (3-10s)")

	planFlag := flag.Bool("plan", false, "print the plan instead of synthesizing")
	outputFlag := flag.String("output", "output.wav", "output wav file")

	flag.Parse()

	if *promptFlag == "" {
		fmt.Fprintln(os.Stderr, "a prompt wav file is required (-prompt)")
		os.Exit(1)
	}

	prompt, err := os.ReadFile(*promptFlag)

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()

	options := []client.RequestOption{}

	if *tokenFlag != "" {
		options = append(options, client.WithToken(*tokenFlag))
	}

	c := client.New(*urlFlag, options...)

	request := client.SynthesisRequest{
		Model: *modelFlag,

		Lyrics: *lyricsFlag,
		Notes:  *notesFlag,

		Prompt:     prompt,
		PromptName: *promptFlag,
	}

	if *planFlag {
		plan(ctx, c, request)
		return
	}

	synthesize(ctx, c, request, *outputFlag)
}

func plan(ctx context.Context, c *client.Client, request client.SynthesisRequest) {
	result, err := c.Plans.New(ctx, request)

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("plan %s (%.2fs)\n", result.RequestID, result.DurationSeconds)

	for i, frame := range result.Frames {
		if frame.Rest {
			fmt.Printf("%3d  %-12s %6s  %.2fs\n", i, "(rest)", "", frame.Duration)
			continue
		}

		marker := ""

		if frame.Sustain {
			marker = "~"
		}

		fmt.Printf("%3d  %-12s %5d%s  %.2fs\n", i, frame.Phoneme, *frame.Pitch, marker, frame.Duration)
	}
}

func synthesize(ctx context.Context, c *client.Client, request client.SynthesisRequest, output string) {
	result, err := c.Syntheses.New(ctx, request)

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := os.WriteFile(output, result.Content, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s (%d bytes, %s)\n", output, len(result.Content), result.ContentType)
}
