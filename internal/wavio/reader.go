package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Reader exposes the parameters and samples of one audio track. NumSamples is
// the per-channel count, so it equals the track duration in sample periods.
type Reader interface {
	SampleRate() int
	NumChannels() int
	NumSamples() int
	// ReadInt16 fills dst with interleaved samples from the current position
	// and returns the number of samples read. It returns io.EOF once the data
	// chunk is exhausted.
	ReadInt16(dst []int16) (int, error)
	Close() error
}

// ReaderFactory produces a Reader for a track file path.
type ReaderFactory interface {
	Create(path string) (Reader, error)
}

// FileReaderFactory decodes real RIFF/WAVE PCM16 files.
type FileReaderFactory struct{}

// Create opens and validates a WAV file. Missing files, truncated headers,
// non-PCM encodings, and bit depths other than 16 are rejected.
func (FileReaderFactory) Create(path string) (Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav file: %w", err)
	}
	reader, err := newFileReader(file)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("wav file %s: %w", path, err)
	}
	return reader, nil
}

const (
	wavFormatPCM       = 1
	wavBitsPerSample   = 16
	wavBytesPerSample  = wavBitsPerSample / 8
	riffHeaderBytes    = 12
	chunkHeaderBytes   = 8
	fmtChunkMinBytes   = 16
	wavHeaderBytes     = 44
	maxInterleavedRead = 1 << 16
)

type fileReader struct {
	file        *os.File
	sampleRate  int
	numChannels int
	numSamples  int
	remaining   int // interleaved samples left in the data chunk
	scratch     []byte
}

func newFileReader(file *os.File) (*fileReader, error) {
	var riff [riffHeaderBytes]byte
	if _, err := io.ReadFull(file, riff[:]); err != nil {
		return nil, fmt.Errorf("read riff header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, errors.New("not a RIFF/WAVE file")
	}

	reader := &fileReader{file: file}
	sawFormat := false
	for {
		var header [chunkHeaderBytes]byte
		if _, err := io.ReadFull(file, header[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, errors.New("missing data chunk")
			}
			return nil, fmt.Errorf("read chunk header: %w", err)
		}
		chunkID := string(header[0:4])
		chunkSize := int(binary.LittleEndian.Uint32(header[4:8]))

		switch chunkID {
		case "fmt ":
			if chunkSize < fmtChunkMinBytes {
				return nil, errors.New("fmt chunk too small")
			}
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(file, body); err != nil {
				return nil, fmt.Errorf("read fmt chunk: %w", err)
			}
			format := binary.LittleEndian.Uint16(body[0:2])
			channels := int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate := int(binary.LittleEndian.Uint32(body[4:8]))
			bits := binary.LittleEndian.Uint16(body[14:16])
			if format != wavFormatPCM {
				return nil, fmt.Errorf("unsupported encoding %d (PCM only)", format)
			}
			if bits != wavBitsPerSample {
				return nil, fmt.Errorf("unsupported bit depth %d (16-bit only)", bits)
			}
			if channels <= 0 {
				return nil, errors.New("invalid channel count")
			}
			if sampleRate <= 0 {
				return nil, errors.New("invalid sample rate")
			}
			reader.numChannels = channels
			reader.sampleRate = sampleRate
			sawFormat = true
		case "data":
			if !sawFormat {
				return nil, errors.New("data chunk before fmt chunk")
			}
			frameBytes := reader.numChannels * wavBytesPerSample
			reader.numSamples = chunkSize / frameBytes
			reader.remaining = reader.numSamples * reader.numChannels
			return reader, nil
		default:
			// Skip ancillary chunks; chunk bodies are word aligned.
			skip := int64(chunkSize)
			if chunkSize%2 == 1 {
				skip++
			}
			if _, err := file.Seek(skip, io.SeekCurrent); err != nil {
				return nil, fmt.Errorf("skip %s chunk: %w", chunkID, err)
			}
		}
	}
}

func (r *fileReader) SampleRate() int  { return r.sampleRate }
func (r *fileReader) NumChannels() int { return r.numChannels }
func (r *fileReader) NumSamples() int  { return r.numSamples }

func (r *fileReader) ReadInt16(dst []int16) (int, error) {
	if r.remaining == 0 {
		return 0, io.EOF
	}
	want := len(dst)
	if want > r.remaining {
		want = r.remaining
	}
	if want > maxInterleavedRead {
		want = maxInterleavedRead
	}
	if cap(r.scratch) < want*wavBytesPerSample {
		r.scratch = make([]byte, want*wavBytesPerSample)
	}
	buf := r.scratch[:want*wavBytesPerSample]
	n, err := io.ReadFull(r.file, buf)
	samples := n / wavBytesPerSample
	for i := 0; i < samples; i++ {
		dst[i] = int16(binary.LittleEndian.Uint16(buf[i*wavBytesPerSample:]))
	}
	r.remaining -= samples
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return samples, io.EOF
		}
		return samples, fmt.Errorf("read samples: %w", err)
	}
	return samples, nil
}

func (r *fileReader) Close() error {
	return r.file.Close()
}

// ReadAll drains a reader into a single interleaved sample buffer.
func ReadAll(r Reader) ([]int16, error) {
	total := r.NumSamples() * r.NumChannels()
	samples := make([]int16, total)
	read := 0
	for read < total {
		n, err := r.ReadInt16(samples[read:])
		read += n
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return samples[:read], nil
}
