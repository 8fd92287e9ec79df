package pgtype

import (
	"encoding/binary"
	"fmt"
	"time"
)

// pgEpoch is the reference instant PostgreSQL's binary date/time formats
// count from: 2000-01-01 00:00:00 UTC.
var pgEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// DecodeDate decodes a 32-bit big-endian Julian day offset from pgEpoch.
func DecodeDate(b []byte) (time.Time, error) {
	if len(b) != 4 {
		return time.Time{}, fmt.Errorf("pgtype: date expects 4 bytes, got %d", len(b))
	}
	days := int32(binary.BigEndian.Uint32(b))
	return pgEpoch.AddDate(0, 0, int(days)), nil
}

// EncodeDate encodes t as a 32-bit big-endian day offset from pgEpoch.
func EncodeDate(t time.Time) []byte {
	days := int32(t.UTC().Sub(pgEpoch).Hours() / 24)
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(days))
	return b
}

// DecodeTimestamp decodes a 64-bit big-endian microsecond offset from
// pgEpoch, used for both timestamp and timestamptz — the wire format does
// not distinguish them; the caller's column type carries that information.
func DecodeTimestamp(b []byte) (time.Time, error) {
	if len(b) != 8 {
		return time.Time{}, fmt.Errorf("pgtype: timestamp expects 8 bytes, got %d", len(b))
	}
	micros := int64(binary.BigEndian.Uint64(b))
	return pgEpoch.Add(time.Duration(micros) * time.Microsecond), nil
}

// EncodeTimestamp encodes t as a 64-bit big-endian microsecond offset from
// pgEpoch.
func EncodeTimestamp(t time.Time) []byte {
	micros := t.UTC().Sub(pgEpoch).Microseconds()
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(micros))
	return b
}

// Interval is the decoded form of PostgreSQL's interval type: a duration in
// microseconds plus separate day and month counts, since a month has no
// fixed length in microseconds.
type Interval struct {
	Microseconds int64
	Days         int32
	Months       int32
}

// DecodeInterval decodes the 64-bit microseconds, 32-bit days, 32-bit
// months triple.
func DecodeInterval(b []byte) (Interval, error) {
	if len(b) != 16 {
		return Interval{}, fmt.Errorf("pgtype: interval expects 16 bytes, got %d", len(b))
	}

	return Interval{
		Microseconds: int64(binary.BigEndian.Uint64(b[0:8])),
		Days:         int32(binary.BigEndian.Uint32(b[8:12])),
		Months:       int32(binary.BigEndian.Uint32(b[12:16])),
	}, nil
}

// EncodeInterval encodes an Interval as the 64/32/32-bit triple.
func EncodeInterval(iv Interval) []byte {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b[0:8], uint64(iv.Microseconds))
	binary.BigEndian.PutUint32(b[8:12], uint32(iv.Days))
	binary.BigEndian.PutUint32(b[12:16], uint32(iv.Months))
	return b
}
