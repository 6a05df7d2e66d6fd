package voice

import "context"

// Transcriber converts a recorded audio clip into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// Synthesizer renders text into an opaque audio blob plus the MIME type the
// vendor reported. The blob is handed to a player or the browser without
// inspection.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, opts SynthesisOptions) ([]byte, string, error)
}

// Provider bundles both directions of the vendor speech API.
type Provider interface {
	Transcriber
	Synthesizer
}

// SettingsStore is the slice of the user store the voice service needs.
type SettingsStore interface {
	GetVoiceSettings(ctx context.Context, userID string) (Settings, error)
	UpdateVoiceSettings(ctx context.Context, userID string, s Settings) error
}
