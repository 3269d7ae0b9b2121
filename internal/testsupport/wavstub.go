// Package testsupport provides shared helpers for package tests, most notably
// a stub audio reader factory that reports canned track parameters without
// touching the filesystem.
package testsupport

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"crosstalk/internal/wavio"
)

// TrackParams are the canned parameters a stub reader reports.
type TrackParams struct {
	SampleRate  int
	NumChannels int
	NumSamples  int
}

// StubReaderFactory satisfies wavio.ReaderFactory with an in-memory parameter
// table keyed by track file base name (extension stripped). Unknown tracks
// fall back to the default parameters. CreateCalls counts factory invocations
// so tests can assert reader deduplication.
type StubReaderFactory struct {
	Default TrackParams
	Tracks  map[string]TrackParams

	mu          sync.Mutex
	createCalls int
	failures    map[string]error
}

// NewStubReaderFactory builds a factory with the standard test track table:
// t300, t500, and t1000 are mono 48 kHz tracks of 0.3, 0.5, and 1.0 seconds.
func NewStubReaderFactory() *StubReaderFactory {
	const rate = 48000
	return &StubReaderFactory{
		Default: TrackParams{SampleRate: rate, NumChannels: 1, NumSamples: 24000},
		Tracks: map[string]TrackParams{
			"t300":  {SampleRate: rate, NumChannels: 1, NumSamples: 14400},
			"t500":  {SampleRate: rate, NumChannels: 1, NumSamples: 24000},
			"t1000": {SampleRate: rate, NumChannels: 1, NumSamples: 48000},
		},
	}
}

// FailWith makes Create return err for the named track.
func (f *StubReaderFactory) FailWith(track string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures == nil {
		f.failures = make(map[string]error)
	}
	f.failures[track] = err
}

// CreateCalls reports how many times Create has been invoked.
func (f *StubReaderFactory) CreateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls
}

// Create returns a stub reader for the track named by path.
func (f *StubReaderFactory) Create(path string) (wavio.Reader, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++

	name := filepath.Base(path)
	name = name[:len(name)-len(filepath.Ext(name))]
	if err, ok := f.failures[name]; ok {
		return nil, fmt.Errorf("stub reader %s: %w", name, err)
	}
	params, ok := f.Tracks[name]
	if !ok {
		params = f.Default
	}
	return &stubReader{params: params, remaining: params.NumSamples * params.NumChannels}, nil
}

type stubReader struct {
	params    TrackParams
	remaining int
}

func (r *stubReader) SampleRate() int  { return r.params.SampleRate }
func (r *stubReader) NumChannels() int { return r.params.NumChannels }
func (r *stubReader) NumSamples() int  { return r.params.NumSamples }

// ReadInt16 yields silence for the track's full duration.
func (r *stubReader) ReadInt16(dst []int16) (int, error) {
	if r.remaining == 0 {
		return 0, io.EOF
	}
	n := len(dst)
	if n > r.remaining {
		n = r.remaining
	}
	for i := 0; i < n; i++ {
		dst[i] = 0
	}
	r.remaining -= n
	return n, nil
}

func (r *stubReader) Close() error { return nil }
