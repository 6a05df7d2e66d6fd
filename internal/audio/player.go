package audio

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// device abstracts the system audio output so playback logic stays testable.
type device interface {
	play(ctx context.Context, pcm []byte) error
}

// Player plays opaque audio blobs on the local output device. One playback at
// a time; each run moves Idle -> Playing -> Ended or Errored, and the clip
// allocated for the run is released in both terminal states.
type Player struct {
	mu  sync.Mutex
	dev device
}

// NewPlayer initializes the system audio context. Fails when no output device
// is available; callers are expected to run without playback in that case.
func NewPlayer(sampleRate int) (*Player, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready
	return &Player{dev: &otoDevice{ctx: otoCtx}}, nil
}

func newPlayerWithDevice(dev device) *Player {
	return &Player{dev: dev}
}

// Play materializes the blob as a clip, plays it, and returns once playback
// ends. Playback errors surface to the caller; the clip is released either way.
func (p *Player) Play(ctx context.Context, blob []byte) error {
	clip, err := NewClip(blob)
	if err != nil {
		return err
	}
	defer clip.Release()

	pcm, err := ExtractPCM(blob)
	if err != nil {
		return fmt.Errorf("playback: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.dev.play(ctx, pcm); err != nil {
		return fmt.Errorf("playback: %w", err)
	}
	return nil
}

type otoDevice struct {
	ctx *oto.Context
}

func (d *otoDevice) play(ctx context.Context, pcm []byte) error {
	player := d.ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			_ = player.Close()
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
	return player.Close()
}
