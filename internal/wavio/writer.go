package wavio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Writer encodes 16-bit PCM samples into a RIFF/WAVE file. The header is
// written with placeholder sizes and patched when the writer is closed, so the
// file is not a valid WAV until Close returns.
type Writer struct {
	file        *os.File
	buf         *bufio.Writer
	dataBytes   uint32
	numChannels int
	closed      bool
}

// NewWriter creates path and writes the WAV header for the given format.
func NewWriter(path string, sampleRate, numChannels int) (*Writer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if numChannels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", numChannels)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create wav file: %w", err)
	}

	w := &Writer{file: file, buf: bufio.NewWriter(file), numChannels: numChannels}
	if err := w.writeHeader(sampleRate, numChannels); err != nil {
		_ = file.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) writeHeader(sampleRate, numChannels int) error {
	blockAlign := numChannels * wavBytesPerSample
	byteRate := sampleRate * blockAlign

	header := make([]byte, 0, wavHeaderBytes)
	header = append(header, "RIFF"...)
	header = binary.LittleEndian.AppendUint32(header, 0) // patched on Close
	header = append(header, "WAVE"...)
	header = append(header, "fmt "...)
	header = binary.LittleEndian.AppendUint32(header, fmtChunkMinBytes)
	header = binary.LittleEndian.AppendUint16(header, wavFormatPCM)
	header = binary.LittleEndian.AppendUint16(header, uint16(numChannels))
	header = binary.LittleEndian.AppendUint32(header, uint32(sampleRate))
	header = binary.LittleEndian.AppendUint32(header, uint32(byteRate))
	header = binary.LittleEndian.AppendUint16(header, uint16(blockAlign))
	header = binary.LittleEndian.AppendUint16(header, wavBitsPerSample)
	header = append(header, "data"...)
	header = binary.LittleEndian.AppendUint32(header, 0) // patched on Close

	if _, err := w.buf.Write(header); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	return nil
}

// WriteInt16 appends interleaved samples to the data chunk.
func (w *Writer) WriteInt16(samples []int16) error {
	if w.closed {
		return fmt.Errorf("write to closed wav writer")
	}
	var chunk [2]byte
	for _, s := range samples {
		binary.LittleEndian.PutUint16(chunk[:], uint16(s))
		if _, err := w.buf.Write(chunk[:]); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
	}
	w.dataBytes += uint32(len(samples) * wavBytesPerSample)
	return nil
}

// Close flushes buffered samples, patches the RIFF and data chunk sizes, and
// closes the file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.buf.Flush(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("flush wav file: %w", err)
	}

	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(wavHeaderBytes-chunkHeaderBytes)+w.dataBytes)
	if _, err := w.file.WriteAt(size[:], 4); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("patch riff size: %w", err)
	}
	binary.LittleEndian.PutUint32(size[:], w.dataBytes)
	if _, err := w.file.WriteAt(size[:], wavHeaderBytes-4); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("patch data size: %w", err)
	}

	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close wav file: %w", err)
	}
	return nil
}

var _ io.Closer = (*Writer)(nil)
