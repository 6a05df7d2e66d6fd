package voice

import (
	"context"
	"sync"
)

// MockProvider is a local fallback provider used when Ultravox is not
// configured. Transcriptions are canned and synthesis returns a tiny silent
// clip so the rest of the pipeline stays exercisable.
type MockProvider struct {
	mu         sync.Mutex
	transcript string
	lastText   string
	lastOpts   SynthesisOptions
}

func NewMockProvider() *MockProvider {
	return &MockProvider{transcript: "simulated voice input"}
}

// SetTranscript overrides the canned transcription result.
func (p *MockProvider) SetTranscript(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transcript = text
}

func (p *MockProvider) Transcribe(_ context.Context, audio []byte, _ string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(audio) == 0 {
		return "", nil
	}
	return p.transcript, nil
}

func (p *MockProvider) Synthesize(_ context.Context, text string, opts SynthesisOptions) ([]byte, string, error) {
	p.mu.Lock()
	p.lastText = text
	p.lastOpts = opts
	p.mu.Unlock()
	// 100ms of PCM16LE silence at 16kHz.
	return make([]byte, 3200), "audio/l16", nil
}

// LastSynthesis reports the most recent synthesis call for assertions.
func (p *MockProvider) LastSynthesis() (string, SynthesisOptions) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastText, p.lastOpts
}
