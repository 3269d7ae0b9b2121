package timing

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Turn describes one scheduled utterance: who speaks, which audio track plays,
// and when the turn starts relative to the end of the previous turn.
//
// Offset is in milliseconds. Negative values overlap the predecessor, positive
// values leave a silence gap, zero means immediate succession. For the first
// turn the offset is measured from time zero.
type Turn struct {
	Speaker string
	Track   string
	Offset  int
}

// String renders the turn in timing-file form.
func (t Turn) String() string {
	return fmt.Sprintf("%s %s %d", t.Speaker, t.Track, t.Offset)
}

// Save writes turns to path in sequence order, one turn per line.
func Save(path string, turns []Turn) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create timing file: %w", err)
	}

	writer := bufio.NewWriter(file)
	for _, turn := range turns {
		if _, err := fmt.Fprintf(writer, "%s %s %d\n", turn.Speaker, turn.Track, turn.Offset); err != nil {
			_ = file.Close()
			return fmt.Errorf("write timing file: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("flush timing file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close timing file: %w", err)
	}
	return nil
}

// Load parses a timing file back into its ordered turn sequence. An empty file
// yields an empty sequence. Malformed records (wrong field count, non-integer
// offset) fail with an error naming the offending line.
func Load(path string) ([]Turn, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open timing file: %w", err)
	}
	defer file.Close()

	var turns []Turn
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("timing file %s line %d: expected 3 fields, got %d", path, lineNo, len(fields))
		}
		offset, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("timing file %s line %d: invalid offset %q", path, lineNo, fields[2])
		}
		turns = append(turns, Turn{Speaker: fields[0], Track: fields[1], Offset: offset})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read timing file: %w", err)
	}
	return turns, nil
}
