package main

import (
	"fmt"
	"time"
)

// samplesDuration converts a sample count at the given rate into wall time.
func samplesDuration(samples int64, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	return time.Duration(samples) * time.Second / time.Duration(sampleRate)
}

func formatSamples(samples int64, sampleRate int) string {
	if sampleRate <= 0 {
		return fmt.Sprintf("%d samples", samples)
	}
	return samplesDuration(samples, sampleRate).Round(time.Millisecond).String()
}

func formatOffset(offsetMs int) string {
	return fmt.Sprintf("%+d ms", offsetMs)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
