// Package wavio reads and writes 16-bit PCM RIFF/WAVE files and defines the
// reader capability the timeline builder consumes.
//
// The ReaderFactory interface is the injection point: production code uses
// FileReaderFactory to decode real files, while tests substitute doubles that
// report canned track parameters. Readers expose sample rate, channel count,
// and the per-channel sample count, which is the only duration source the
// timeline arithmetic uses.
package wavio
