package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"crosstalk/internal/timeline"
	"crosstalk/internal/wavio"
)

// ErrInvalidTimeline reports an attempt to render a layout that failed
// validation; placements carry no meaning there.
var ErrInvalidTimeline = errors.New("cannot render an invalid timeline")

// MixFileName is the name of the full-conversation output file.
const MixFileName = "mix.wav"

// Options selects which output files Render produces.
type Options struct {
	SpeakerTracks bool
	Mix           bool
}

// Render writes the selected outputs into outDir and returns the paths
// written. Track samples are decoded once per distinct track name and shared
// across the turns that reference it. Only mono tracks are supported.
func Render(tl *timeline.Timeline, outDir string, opts Options) ([]string, error) {
	if !tl.Valid() {
		return nil, ErrInvalidTimeline
	}
	if len(tl.Turns()) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	samples, err := decodeTracks(tl.TrackReaders())
	if err != nil {
		return nil, err
	}

	total := tl.TotalDurationSamples()
	var written []string

	if opts.SpeakerTracks {
		for _, speaker := range tl.SpeakerNames() {
			buffer := make([]int16, total)
			for _, turn := range tl.Turns() {
				if turn.Turn.Speaker != speaker {
					continue
				}
				// Same-speaker turns never overlap in a valid timeline, so a
				// plain copy is sufficient.
				copy(buffer[turn.Begin:turn.End], samples[turn.Turn.Track])
			}
			path := filepath.Join(outDir, speakerFileName(speaker))
			if err := writeTrack(path, tl.SampleRate(), buffer); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}

	if opts.Mix {
		mix := make([]int32, total)
		for _, turn := range tl.Turns() {
			track := samples[turn.Turn.Track]
			for i, s := range track {
				mix[turn.Begin+int64(i)] += int32(s)
			}
		}
		buffer := make([]int16, total)
		for i, s := range mix {
			buffer[i] = clampInt16(s)
		}
		path := filepath.Join(outDir, MixFileName)
		if err := writeTrack(path, tl.SampleRate(), buffer); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

func decodeTracks(readers map[string]wavio.Reader) (map[string][]int16, error) {
	samples := make(map[string][]int16, len(readers))
	for name, reader := range readers {
		if reader.NumChannels() != 1 {
			return nil, fmt.Errorf("track %q has %d channels, only mono tracks can be rendered", name, reader.NumChannels())
		}
		decoded, err := wavio.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("decode track %q: %w", name, err)
		}
		samples[name] = decoded
	}
	return samples, nil
}

func writeTrack(path string, sampleRate int, samples []int16) error {
	writer, err := wavio.NewWriter(path, sampleRate, 1)
	if err != nil {
		return err
	}
	if err := writer.WriteInt16(samples); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

// speakerFileName maps a speaker name to a safe output file name.
func speakerFileName(speaker string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, speaker)
	if sanitized == "" {
		sanitized = "speaker"
	}
	return sanitized + ".wav"
}

func clampInt16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
