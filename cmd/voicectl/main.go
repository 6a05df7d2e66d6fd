// voicectl synthesizes a phrase through the configured vendor and plays it on
// the local audio device. Handy for auditioning voices without the web app.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/gvargas9/smartterapist-sub001/internal/audio"
	"github.com/gvargas9/smartterapist-sub001/internal/config"
	"github.com/gvargas9/smartterapist-sub001/internal/voice"
)

type options struct {
	text    string
	voice   string
	speed   float64
	pitch   float64
	outPath string
	timeout time.Duration
}

func parseArgs(args []string) (options, error) {
	fs := flag.NewFlagSet("voicectl", flag.ContinueOnError)
	opts := options{}
	fs.StringVar(&opts.text, "text", "", "text to synthesize (required)")
	fs.StringVar(&opts.voice, "voice", "", "vendor voice name (default from config)")
	fs.Float64Var(&opts.speed, "speed", 0, "speaking rate, 0 means default")
	fs.Float64Var(&opts.pitch, "pitch", 0, "pitch, 0 means default")
	fs.StringVar(&opts.outPath, "out", "", "write the audio blob to this file instead of playing it")
	fs.DurationVar(&opts.timeout, "timeout", 60*time.Second, "overall deadline")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if strings.TrimSpace(opts.text) == "" {
		return options{}, fmt.Errorf("-text is required")
	}
	return opts, nil
}

func main() {
	_ = godotenv.Load()

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("usage: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	client := voice.NewUltravoxClient(voice.UltravoxConfig{
		APIKey:       cfg.UltravoxAPIKey,
		BaseURL:      cfg.UltravoxBaseURL,
		DefaultVoice: cfg.DefaultVoice,
		HTTPTimeout:  cfg.UltravoxHTTPTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	blob, contentType, err := client.Synthesize(ctx, opts.text, voice.SynthesisOptions{
		Voice: opts.voice,
		Speed: opts.speed,
		Pitch: opts.pitch,
	})
	if err != nil {
		log.Fatalf("synthesis failed: %v", err)
	}
	log.Printf("synthesized %d bytes (%s)", len(blob), contentType)

	if opts.outPath != "" {
		if err := os.WriteFile(opts.outPath, blob, 0o644); err != nil {
			log.Fatalf("write %s: %v", opts.outPath, err)
		}
		log.Printf("wrote %s", opts.outPath)
		return
	}

	player, err := audio.NewPlayer(audio.DefaultSampleRate)
	if err != nil {
		log.Fatalf("audio device unavailable: %v", err)
	}
	if err := player.Play(ctx, blob); err != nil {
		log.Fatalf("playback failed: %v", err)
	}
}
