package timeline

import "sort"

// validatePlacement runs the four layout checks over placed turns. The
// cheap sequential checks (non-negative start, monotonic begins) run first;
// the overlap constraints use a sweep over interval boundary events.
func validatePlacement(turns []PlacedTurn) bool {
	if len(turns) == 0 {
		return true
	}
	if turns[0].Begin < 0 {
		return false
	}
	for n := 1; n < len(turns); n++ {
		if turns[n].Begin < turns[n-1].Begin {
			return false
		}
	}
	return sweepOverlaps(turns)
}

type boundaryEvent struct {
	at    int64
	start bool
	turn  int
}

// sweepOverlaps checks the bounded-concurrency and self-overlap constraints:
// at no instant may more than two turns be active, and two active turns must
// never share a speaker. Intervals are half-open, so an end event at a
// timestamp is processed before a start event at the same timestamp and
// back-to-back turns do not count as overlapping.
func sweepOverlaps(turns []PlacedTurn) bool {
	events := make([]boundaryEvent, 0, len(turns)*2)
	for i, turn := range turns {
		if turn.Begin == turn.End {
			// Zero-length turns occupy no instant.
			continue
		}
		events = append(events, boundaryEvent{at: turn.Begin, start: true, turn: i})
		events = append(events, boundaryEvent{at: turn.End, start: false, turn: i})
	}
	sort.Slice(events, func(a, b int) bool {
		if events[a].at != events[b].at {
			return events[a].at < events[b].at
		}
		return !events[a].start && events[b].start
	})

	active := make(map[int]struct{}, 3)
	for _, event := range events {
		if !event.start {
			delete(active, event.turn)
			continue
		}
		speaker := turns[event.turn].Turn.Speaker
		for other := range active {
			if turns[other].Turn.Speaker == speaker {
				return false
			}
		}
		active[event.turn] = struct{}{}
		if len(active) > 2 {
			return false
		}
	}
	return true
}
