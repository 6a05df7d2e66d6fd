package voice

import "math"

const (
	// DefaultVoice is the vendor voice used when a user has no stored preference.
	DefaultVoice = "en-US-Neural2-F"

	// DefaultLanguage is the BCP-47 tag sent with transcriptions by default.
	DefaultLanguage = "en-US"

	minRate = 0.25
	maxRate = 4.0
)

// Settings holds a user's voice preferences as persisted in the users table.
// JSON field names are a compatibility contract with the web client.
type Settings struct {
	Enabled        bool    `json:"enabled"`
	PreferredVoice string  `json:"preferredVoice"`
	Speed          float64 `json:"speed"`
	Pitch          float64 `json:"pitch"`
}

// DefaultSettings returns the settings applied when none are stored or the
// stored row cannot be used.
func DefaultSettings() Settings {
	return Settings{
		Enabled:        true,
		PreferredVoice: DefaultVoice,
		Speed:          1.0,
		Pitch:          1.0,
	}
}

// Valid reports whether the settings are usable: finite positive rates within
// the vendor's accepted range and a non-empty voice name.
func (s Settings) Valid() bool {
	if s.PreferredVoice == "" {
		return false
	}
	for _, v := range []float64{s.Speed, s.Pitch} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		if v < minRate || v > maxRate {
			return false
		}
	}
	return true
}

// SynthesisOptions overrides parts of the default synthesis request. Zero
// fields fall back to the defaults at the request boundary; anything a caller
// sets beyond these three knobs never reaches the vendor.
type SynthesisOptions struct {
	Voice string
	Speed float64
	Pitch float64
}

func (o SynthesisOptions) withDefaults(defaultVoice string) SynthesisOptions {
	if o.Voice == "" {
		o.Voice = defaultVoice
	}
	if o.Speed == 0 {
		o.Speed = 1.0
	}
	if o.Pitch == 0 {
		o.Pitch = 1.0
	}
	return o
}
