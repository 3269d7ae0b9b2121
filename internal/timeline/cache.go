package timeline

import (
	"fmt"
	"path/filepath"

	"crosstalk/internal/timing"
	"crosstalk/internal/wavio"
)

// resolveReaders opens exactly one reader per distinct track name referenced
// by turns, resolving names inside trackDir. A factory failure on any track
// closes the readers opened so far and aborts; partial maps are never
// returned. The shared sample rate of the resolved tracks is returned
// alongside the map.
func resolveReaders(turns []timing.Turn, trackDir string, factory wavio.ReaderFactory) (map[string]wavio.Reader, int, error) {
	readers := make(map[string]wavio.Reader)
	sampleRate := 0
	for _, turn := range turns {
		if _, ok := readers[turn.Track]; ok {
			continue
		}
		reader, err := factory.Create(filepath.Join(trackDir, turn.Track))
		if err != nil {
			closeAll(readers)
			return nil, 0, fmt.Errorf("resolve track %q: %w", turn.Track, err)
		}
		if rate := reader.SampleRate(); rate <= 0 {
			_ = reader.Close()
			closeAll(readers)
			return nil, 0, fmt.Errorf("resolve track %q: invalid sample rate %d", turn.Track, rate)
		} else if sampleRate == 0 {
			sampleRate = rate
		} else if rate != sampleRate {
			_ = reader.Close()
			closeAll(readers)
			return nil, 0, fmt.Errorf("track %q is %d Hz, expected %d Hz: %w", turn.Track, rate, sampleRate, ErrSampleRateMismatch)
		}
		readers[turn.Track] = reader
	}
	return readers, sampleRate, nil
}

func closeAll(readers map[string]wavio.Reader) {
	for _, reader := range readers {
		_ = reader.Close()
	}
}
