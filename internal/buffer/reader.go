// Package buffer provides low-level, allocation-conscious helpers for
// reading and writing the fixed-shape fields that make up a PostgreSQL v3
// message body.
package buffer

import (
	"bytes"
	"encoding/binary"
	"unsafe"
)

// Reader walks a single message body left to right, consuming fields in
// wire order. It does not own the underlying slice and never copies it;
// callers must not reuse the slice passed to NewReader while the Reader is
// still in use.
type Reader struct {
	buf []byte
}

// NewReader wraps body for field-by-field decoding.
func NewReader(body []byte) *Reader {
	return &Reader{buf: body}
}

// Remaining returns the number of unread bytes left in the body.
func (r *Reader) Remaining() int {
	return len(r.buf)
}

// Bytes returns the unread tail of the body without consuming it.
func (r *Reader) Bytes() []byte {
	return r.buf
}

// GetString reads a NUL-terminated string.
func (r *Reader) GetString() (string, error) {
	pos := bytes.IndexByte(r.buf, 0)
	if pos == -1 {
		return "", NewMissingNulTerminator()
	}

	s := r.buf[:pos]
	r.buf = r.buf[pos+1:]
	// Safe because the reader never mutates or reuses the bytes it has
	// already handed out.
	return *((*string)(unsafe.Pointer(&s))), nil
}

// GetBytes reads exactly n bytes. n == -1 is the wire convention for a NULL
// value and returns a nil slice.
func (r *Reader) GetBytes(n int) ([]byte, error) {
	if n == -1 {
		return nil, nil
	}

	if len(r.buf) < n {
		return nil, NewInsufficientData(len(r.buf), n)
	}

	v := r.buf[:n]
	r.buf = r.buf[n:]
	return v, nil
}

// GetRemaining consumes and returns every byte left in the body.
func (r *Reader) GetRemaining() []byte {
	v := r.buf
	r.buf = nil
	return v
}

// GetByte reads a single byte.
func (r *Reader) GetByte() (byte, error) {
	if len(r.buf) < 1 {
		return 0, NewInsufficientData(len(r.buf), 1)
	}

	b := r.buf[0]
	r.buf = r.buf[1:]
	return b, nil
}

// GetBool reads a single wire boolean (0x00 / 0x01).
func (r *Reader) GetBool() (bool, error) {
	b, err := r.GetByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// GetUint16 reads a big-endian uint16.
func (r *Reader) GetUint16() (uint16, error) {
	if len(r.buf) < 2 {
		return 0, NewInsufficientData(len(r.buf), 2)
	}

	v := binary.BigEndian.Uint16(r.buf[:2])
	r.buf = r.buf[2:]
	return v, nil
}

// GetInt16 reads a big-endian int16.
func (r *Reader) GetInt16() (int16, error) {
	v, err := r.GetUint16()
	return int16(v), err
}

// GetUint32 reads a big-endian uint32.
func (r *Reader) GetUint32() (uint32, error) {
	if len(r.buf) < 4 {
		return 0, NewInsufficientData(len(r.buf), 4)
	}

	v := binary.BigEndian.Uint32(r.buf[:4])
	r.buf = r.buf[4:]
	return v, nil
}

// GetInt32 reads a big-endian int32.
func (r *Reader) GetInt32() (int32, error) {
	v, err := r.GetUint32()
	return int32(v), err
}

// GetUint64 reads a big-endian uint64.
func (r *Reader) GetUint64() (uint64, error) {
	if len(r.buf) < 8 {
		return 0, NewInsufficientData(len(r.buf), 8)
	}

	v := binary.BigEndian.Uint64(r.buf[:8])
	r.buf = r.buf[8:]
	return v, nil
}

// GetInt64 reads a big-endian int64.
func (r *Reader) GetInt64() (int64, error) {
	v, err := r.GetUint64()
	return int64(v), err
}
