// Package chunk implements the binpack file framing layer (spec §4.9):
// each chunk is a 4-byte ASCII magic "BINP", a 4-byte little-endian uint32
// payload length, and the payload itself. Chunks are independently
// decodable; the writer and reader in this package operate purely on
// byte-stream interfaces (io.Writer/io.Reader), leaving file-open/append
// plumbing to the caller.
package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("binpack/chunk")

// Sentinel error kinds, matching spec §7. Wrapped errors satisfy errors.Is
// against these.
var (
	ErrIO            = errors.New("binpack: io error")
	ErrInvalidFormat = errors.New("binpack: invalid format")
	ErrEndOfFile     = errors.New("binpack: end of file")
)

// Magic is the 4-byte ASCII tag that opens every chunk.
const Magic = "BINP"

// headerSize is the byte size of the magic + length prefix.
const headerSize = 4 + 4

// DefaultTargetSize is the suggested chunk payload size before the writer
// emits a chunk (spec §4.9: "~1 MiB").
const DefaultTargetSize = 1 << 20

// Writer accumulates chain bytes and emits them as BINP-framed chunks once
// the buffered payload crosses a target size. The caller decides exactly
// when a chunk boundary is safe to cross (chains are never split across
// chunks), so Flush is explicit rather than automatic.
type Writer struct {
	out    io.Writer
	target int
	buf    []byte
}

// NewWriter returns a Writer appending chunks to out. A targetSize <= 0
// uses DefaultTargetSize.
func NewWriter(out io.Writer, targetSize int) *Writer {
	if targetSize <= 0 {
		targetSize = DefaultTargetSize
	}
	return &Writer{out: out, target: targetSize}
}

// Append adds payload bytes to the pending chunk buffer.
func (w *Writer) Append(data []byte) {
	w.buf = append(w.buf, data...)
}

// Len reports the size of the pending, not-yet-flushed buffer.
func (w *Writer) Len() int { return len(w.buf) }

// ShouldFlush reports whether the pending buffer has reached the writer's
// target size. Callers check this only at chain boundaries.
func (w *Writer) ShouldFlush() bool { return len(w.buf) >= w.target }

// Flush writes the pending buffer as a single chunk and clears it. It is a
// no-op when the buffer is empty.
func (w *Writer) Flush() error {
	if len(w.buf) == 0 {
		return nil
	}

	var header [headerSize]byte
	copy(header[:4], Magic)
	binary.LittleEndian.PutUint32(header[4:], uint32(len(w.buf)))

	if _, err := w.out.Write(header[:]); err != nil {
		return fmt.Errorf("%w: writing chunk header: %v", ErrIO, err)
	}
	if _, err := w.out.Write(w.buf); err != nil {
		return fmt.Errorf("%w: writing chunk payload: %v", ErrIO, err)
	}

	log.Debugf("flushed chunk: %d bytes", len(w.buf))
	w.buf = w.buf[:0]
	return nil
}

// Reader reads BINP-framed chunks one at a time from an underlying
// io.Reader.
type Reader struct {
	in        io.Reader
	bytesRead int64
}

// NewReader returns a Reader over in.
func NewReader(in io.Reader) *Reader {
	return &Reader{in: in}
}

// NextChunk reads and validates the next chunk header and returns its
// payload. It returns ErrEndOfFile when in is exhausted exactly at a chunk
// boundary, and ErrInvalidFormat when the magic doesn't match or the
// declared length can't be satisfied by the remaining bytes.
func (r *Reader) NextChunk() ([]byte, error) {
	var header [headerSize]byte
	n, err := io.ReadFull(r.in, header[:])
	if err == io.EOF && n == 0 {
		return nil, ErrEndOfFile
	}
	if err == io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("%w: truncated chunk header", ErrInvalidFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading chunk header: %v", ErrIO, err)
	}

	if string(header[:4]) != Magic {
		return nil, fmt.Errorf("%w: bad chunk magic %q", ErrInvalidFormat, header[:4])
	}
	length := binary.LittleEndian.Uint32(header[4:])

	// Read via a capped reader rather than make([]byte, length) + ReadFull:
	// length comes straight off the wire, and a corrupted or malicious
	// header declaring a multi-gigabyte chunk must not trigger an
	// up-front allocation of that size before the short read is detected.
	payload, err := io.ReadAll(io.LimitReader(r.in, int64(length)))
	if err != nil {
		return nil, fmt.Errorf("%w: reading chunk payload: %v", ErrIO, err)
	}
	if uint32(len(payload)) != length {
		return nil, fmt.Errorf("%w: chunk length %d exceeds available bytes", ErrInvalidFormat, length)
	}

	r.bytesRead += int64(headerSize) + int64(length)
	log.Debugf("read chunk: %d bytes", length)
	return payload, nil
}

// BytesRead reports the total number of bytes (headers and payloads)
// consumed so far.
func (r *Reader) BytesRead() int64 { return r.bytesRead }
