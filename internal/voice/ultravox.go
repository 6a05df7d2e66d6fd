package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrMissingAPIKey is returned before any network I/O when the vendor key is
// not configured. Callers treat it as fatal for the operation.
var ErrMissingAPIKey = errors.New("ultravox api key is not configured")

const maxErrorBody = 1 << 20

type UltravoxConfig struct {
	APIKey       string
	BaseURL      string
	DefaultVoice string
	HTTPTimeout  time.Duration
}

// UltravoxClient brokers speech-to-text and text-to-speech against the hosted
// Ultravox API.
type UltravoxClient struct {
	cfg    UltravoxConfig
	client *http.Client
}

func NewUltravoxClient(cfg UltravoxConfig) *UltravoxClient {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.ultravox.ai"
	}
	if strings.TrimSpace(cfg.DefaultVoice) == "" {
		cfg.DefaultVoice = DefaultVoice
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	return &UltravoxClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

type transcriptResponse struct {
	Text string `json:"text"`
}

type vendorError struct {
	Message string `json:"message"`
}

// Transcribe posts the audio clip as a multipart form and returns the
// recognized text. An absent or empty transcript yields the empty string.
func (c *UltravoxClient) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", ErrMissingAPIKey
	}
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("audio", "audio")
	if err != nil {
		return "", fmt.Errorf("build transcription form: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("build transcription form: %w", err)
	}
	if err := form.WriteField("language", language); err != nil {
		return "", fmt.Errorf("build transcription form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("build transcription form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/v1/speech-to-text"), &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", form.FormDataContentType())

	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech-to-text request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", vendorFailure(res.Body, "speech-to-text failed")
	}

	var parsed transcriptResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode transcript: %w", err)
	}
	return parsed.Text, nil
}

// Synthesize renders text as audio. Caller options are merged over the
// configured defaults before the request is built; the returned bytes are
// passed through uninspected along with the vendor-reported content type.
func (c *UltravoxClient) Synthesize(ctx context.Context, text string, opts SynthesisOptions) ([]byte, string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, "", ErrMissingAPIKey
	}

	opts = opts.withDefaults(c.cfg.DefaultVoice)
	payload, err := json.Marshal(map[string]any{
		"text":  text,
		"voice": opts.Voice,
		"speed": opts.Speed,
		"pitch": opts.Pitch,
	})
	if err != nil {
		return nil, "", fmt.Errorf("encode synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/v1/text-to-speech"), bytes.NewReader(payload))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("text-to-speech request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, "", vendorFailure(res.Body, "text-to-speech failed")
	}

	audio, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read synthesized audio: %w", err)
	}
	return audio, res.Header.Get("Content-Type"), nil
}

func (c *UltravoxClient) endpoint(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + path
}

// vendorFailure prefers the server-provided message when the error body is a
// parseable envelope, otherwise falls back to the per-operation generic.
func vendorFailure(body io.Reader, generic string) error {
	raw, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
	var env vendorError
	if err := json.Unmarshal(raw, &env); err == nil && strings.TrimSpace(env.Message) != "" {
		return errors.New(env.Message)
	}
	return errors.New(generic)
}
