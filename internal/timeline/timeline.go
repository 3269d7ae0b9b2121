package timeline

import (
	"errors"
	"sort"

	"crosstalk/internal/timing"
	"crosstalk/internal/wavio"
)

// ErrSampleRateMismatch reports tracks with differing sample rates within one
// timeline. All tracks must share a single rate; no resampling is performed.
var ErrSampleRateMismatch = errors.New("audio tracks use differing sample rates")

const millisPerSecond = 1000

// PlacedTurn is a turn with its absolute position on the sample axis. The
// interval is half-open: the turn occupies [Begin, End).
type PlacedTurn struct {
	Turn  timing.Turn
	Begin int64
	End   int64
}

// Duration returns the turn length in samples.
func (p PlacedTurn) Duration() int64 {
	return p.End - p.Begin
}

// Timeline is the immutable result of placing and validating a turn sequence.
// Speaker names and track readers are meaningful regardless of validity;
// placements and the total duration carry meaning only when Valid reports
// true.
type Timeline struct {
	turns      []PlacedTurn
	speakers   []string
	readers    map[string]wavio.Reader
	sampleRate int
	valid      bool
	total      int64
}

// Build resolves every distinct track through factory, places the turns, and
// runs the validity checks. It fails only on track resolution problems
// (factory errors, mixed sample rates); an implausible layout is reported via
// Valid, never as an error.
func Build(turns []timing.Turn, trackDir string, factory wavio.ReaderFactory) (*Timeline, error) {
	readers, sampleRate, err := resolveReaders(turns, trackDir, factory)
	if err != nil {
		return nil, err
	}

	tl := &Timeline{
		readers:    readers,
		sampleRate: sampleRate,
		speakers:   distinctSpeakers(turns),
	}
	tl.place(turns)
	tl.valid = validatePlacement(tl.turns)
	if tl.valid {
		for _, turn := range tl.turns {
			if turn.End > tl.total {
				tl.total = turn.End
			}
		}
	}
	return tl, nil
}

// place computes absolute positions sequentially: each turn begins at the
// previous turn's end shifted by the turn's offset, converted from
// milliseconds to samples at the track's rate.
func (tl *Timeline) place(turns []timing.Turn) {
	tl.turns = make([]PlacedTurn, 0, len(turns))
	previousEnd := int64(0)
	for _, turn := range turns {
		reader := tl.readers[turn.Track]
		begin := previousEnd + offsetSamples(turn.Offset, reader.SampleRate())
		end := begin + int64(reader.NumSamples())
		tl.turns = append(tl.turns, PlacedTurn{Turn: turn, Begin: begin, End: end})
		previousEnd = end
	}
}

func offsetSamples(offsetMs, sampleRate int) int64 {
	return int64(offsetMs) * int64(sampleRate) / millisPerSecond
}

func distinctSpeakers(turns []timing.Turn) []string {
	seen := make(map[string]struct{}, len(turns))
	var names []string
	for _, turn := range turns {
		if _, ok := seen[turn.Speaker]; ok {
			continue
		}
		seen[turn.Speaker] = struct{}{}
		names = append(names, turn.Speaker)
	}
	sort.Strings(names)
	return names
}

// Valid reports whether the layout satisfies every placement constraint.
func (tl *Timeline) Valid() bool {
	return tl.valid
}

// SpeakerNames returns the distinct speakers across all turns, sorted.
func (tl *Timeline) SpeakerNames() []string {
	return tl.speakers
}

// TrackReaders returns the per-track reader map, one entry per distinct track
// name.
func (tl *Timeline) TrackReaders() map[string]wavio.Reader {
	return tl.readers
}

// Turns returns the placed turns in input order. Positions are meaningful only
// when Valid reports true.
func (tl *Timeline) Turns() []PlacedTurn {
	return tl.turns
}

// TotalDurationSamples returns the end of the last-ending turn, or zero when
// the layout is invalid or empty.
func (tl *Timeline) TotalDurationSamples() int64 {
	return tl.total
}

// SampleRate returns the uniform sample rate of the resolved tracks, or zero
// for an empty timeline.
func (tl *Timeline) SampleRate() int {
	return tl.sampleRate
}

// Close releases every track reader. The timeline must not be used afterward.
func (tl *Timeline) Close() error {
	var firstErr error
	for _, reader := range tl.readers {
		if err := reader.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
