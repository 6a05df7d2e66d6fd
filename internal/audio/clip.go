package audio

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

var outstandingClips atomic.Int64

// OutstandingClips reports how many clips are allocated and not yet released.
// After any playback, successful or not, the count attributable to it is zero.
func OutstandingClips() int64 {
	return outstandingClips.Load()
}

// Clip is a temp-file-backed handle for an in-memory audio blob, standing in
// for the browser's object URL: allocated for the duration of one playback and
// released exactly once on both the success and the error path.
type Clip struct {
	path    string
	release sync.Once
}

// NewClip materializes the blob as a temporary file.
func NewClip(blob []byte) (*Clip, error) {
	f, err := os.CreateTemp("", "clip-*.audio")
	if err != nil {
		return nil, fmt.Errorf("allocate clip: %w", err)
	}
	if _, err := f.Write(blob); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("write clip: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("write clip: %w", err)
	}

	outstandingClips.Add(1)
	return &Clip{path: f.Name()}, nil
}

// Path returns the clip's temporary file path.
func (c *Clip) Path() string { return c.path }

// Release removes the backing file. Idempotent.
func (c *Clip) Release() {
	c.release.Do(func() {
		os.Remove(c.path)
		outstandingClips.Add(-1)
	})
}
