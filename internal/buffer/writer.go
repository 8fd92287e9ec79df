package buffer

import (
	"bytes"
	"encoding/binary"
	"io"
	"log/slog"
)

// Writer provides a convenient way to build PostgreSQL v3 frontend
// (client-to-server) messages and flush them to an underlying io.Writer.
type Writer struct {
	io.Writer
	logger  *slog.Logger
	frame   bytes.Buffer
	putbuf  [64]byte
	err     error
	untyped bool
}

// NewWriter constructs a Writer that flushes completed frames to w.
func NewWriter(logger *slog.Logger, w io.Writer) *Writer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Writer{logger: logger, Writer: w}
}

// Start resets the buffer and opens a new message of the given client
// message type. The tag byte and four reserved length bytes are written
// immediately; End backpatches the length once the body is known.
func (w *Writer) Start(t byte) {
	w.Reset()
	w.untyped = false
	w.putbuf[0] = t
	w.frame.Write(w.putbuf[:5])
}

// StartUntyped opens an untyped message, used only for StartupMessage and
// SSLRequest/CancelRequest, which carry no leading tag byte.
func (w *Writer) StartUntyped() {
	w.Reset()
	w.untyped = true
	w.frame.Write(w.putbuf[:4])
}

// AddByte appends a single byte to the frame.
func (w *Writer) AddByte(b byte) {
	if w.err != nil {
		return
	}
	w.err = w.frame.WriteByte(b)
}

// AddBool appends a single wire boolean.
func (w *Writer) AddBool(v bool) {
	if v {
		w.AddByte(1)
		return
	}
	w.AddByte(0)
}

// AddInt16 appends a big-endian int16.
func (w *Writer) AddInt16(i int16) {
	if w.err != nil {
		return
	}
	binary.BigEndian.PutUint16(w.putbuf[:2], uint16(i))
	_, w.err = w.frame.Write(w.putbuf[:2])
}

// AddInt32 appends a big-endian int32.
func (w *Writer) AddInt32(i int32) {
	if w.err != nil {
		return
	}
	binary.BigEndian.PutUint32(w.putbuf[:4], uint32(i))
	_, w.err = w.frame.Write(w.putbuf[:4])
}

// AddUint32 appends a big-endian uint32.
func (w *Writer) AddUint32(i uint32) {
	if w.err != nil {
		return
	}
	binary.BigEndian.PutUint32(w.putbuf[:4], i)
	_, w.err = w.frame.Write(w.putbuf[:4])
}

// AddInt64 appends a big-endian int64.
func (w *Writer) AddInt64(i int64) {
	if w.err != nil {
		return
	}
	binary.BigEndian.PutUint64(w.putbuf[:8], uint64(i))
	_, w.err = w.frame.Write(w.putbuf[:8])
}

// AddBytes appends raw bytes.
func (w *Writer) AddBytes(b []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.frame.Write(b)
}

// AddString appends raw string bytes, with no terminator.
func (w *Writer) AddString(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.frame.WriteString(s)
}

// AddCString appends a NUL-terminated string.
func (w *Writer) AddCString(s string) {
	w.AddString(s)
	w.AddNullTerminate()
}

// AddNullTerminate appends a single NUL byte.
func (w *Writer) AddNullTerminate() {
	if w.err != nil {
		return
	}
	w.err = w.frame.WriteByte(0)
}

// Error returns the first error encountered while building the frame, if
// any.
func (w *Writer) Error() error {
	return w.err
}

// Bytes returns the bytes written to the active frame so far.
func (w *Writer) Bytes() []byte {
	return w.frame.Bytes()
}

// Reset discards the active frame.
func (w *Writer) Reset() {
	w.frame.Reset()
	w.err = nil
}

// End backpatches the frame's length field and flushes it to the
// underlying writer, logging the outbound message type.
func (w *Writer) End(label string) error {
	defer w.Reset()
	if w.err != nil {
		return w.err
	}

	body := w.frame.Bytes()
	lengthOffset := 1
	if w.untyped {
		lengthOffset = 0
	}

	length := uint32(len(body) - lengthOffset)
	binary.BigEndian.PutUint32(body[lengthOffset:lengthOffset+4], length)

	_, err := w.Write(body)
	w.logger.Debug("-> writing message", slog.String("type", label))
	return err
}
