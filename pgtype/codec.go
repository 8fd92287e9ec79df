// Package pgtype implements the binary wire codecs for the column value
// types named in the protocol: bool, bytea, char, the fixed-width integers
// and floats, text/json/jsonb, the temporal types, uuid, and numeric.
//
// Every codec here operates on an already-extracted column body — framing
// and null handling (length == -1) are the caller's responsibility, mirroring
// how the teacher's row.go hands extracted column bytes to format-specific
// decoders rather than decoding in place.
package pgtype

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/lib/pq/oid"
)

// DecodeBool decodes a single wire boolean (0x00 / 0x01).
func DecodeBool(b []byte) (bool, error) {
	if len(b) != 1 {
		return false, fmt.Errorf("pgtype: bool expects 1 byte, got %d", len(b))
	}
	return b[0] != 0, nil
}

// EncodeBool encodes a Go bool as a single wire byte.
func EncodeBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeBytea returns the raw column bytes unchanged; bytea has no
// structure beyond its length, which the frame layer already stripped.
func DecodeBytea(b []byte) ([]byte, error) {
	return b, nil
}

// DecodeChar decodes a single-byte ASCII "char" column.
func DecodeChar(b []byte) (byte, error) {
	if len(b) != 1 {
		return 0, fmt.Errorf("pgtype: char expects 1 byte, got %d", len(b))
	}
	return b[0], nil
}

// DecodeInt2 decodes a signed 16-bit big-endian integer.
func DecodeInt2(b []byte) (int16, error) {
	if len(b) != 2 {
		return 0, fmt.Errorf("pgtype: int2 expects 2 bytes, got %d", len(b))
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

// DecodeInt4 decodes a signed 32-bit big-endian integer.
func DecodeInt4(b []byte) (int32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("pgtype: int4 expects 4 bytes, got %d", len(b))
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// DecodeInt8 decodes a signed 64-bit big-endian integer.
func DecodeInt8(b []byte) (int64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("pgtype: int8 expects 8 bytes, got %d", len(b))
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// EncodeInt2 encodes a signed 16-bit big-endian integer.
func EncodeInt2(v int16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(v))
	return b
}

// EncodeInt4 encodes a signed 32-bit big-endian integer.
func EncodeInt4(v int32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(v))
	return b
}

// EncodeInt8 encodes a signed 64-bit big-endian integer.
func EncodeInt8(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

// DecodeFloat4 decodes an IEEE-754 big-endian 32-bit float.
func DecodeFloat4(b []byte) (float32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("pgtype: float4 expects 4 bytes, got %d", len(b))
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

// DecodeFloat8 decodes an IEEE-754 big-endian 64-bit float.
func DecodeFloat8(b []byte) (float64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("pgtype: float8 expects 8 bytes, got %d", len(b))
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// EncodeFloat4 encodes an IEEE-754 big-endian 32-bit float.
func EncodeFloat4(v float32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, math.Float32bits(v))
	return b
}

// EncodeFloat8 encodes an IEEE-754 big-endian 64-bit float.
func EncodeFloat8(v float64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, math.Float64bits(v))
	return b
}

// DecodeText decodes a raw UTF-8 text or json column.
func DecodeText(b []byte) (string, error) {
	return string(b), nil
}

// EncodeText encodes a string as raw UTF-8 bytes.
func EncodeText(s string) []byte {
	return []byte(s)
}

// jsonbVersion is the single version byte PostgreSQL currently defines for
// the jsonb wire format.
const jsonbVersion = 0x01

// DecodeJSONB strips the leading version byte and returns the UTF-8 JSON
// body, rejecting any version this driver does not recognize.
func DecodeJSONB(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("pgtype: jsonb body is empty")
	}
	if b[0] != jsonbVersion {
		return nil, fmt.Errorf("pgtype: unsupported jsonb version %d", b[0])
	}
	return b[1:], nil
}

// EncodeJSONB prefixes a UTF-8 JSON body with the jsonb version byte.
func EncodeJSONB(body []byte) []byte {
	out := make([]byte, 0, len(body)+1)
	out = append(out, jsonbVersion)
	return append(out, body...)
}

// OIDKind classifies which Go decoder a column's type OID selects, built on
// lib/pq's well-known OID constants rather than a hand-rolled table.
func OIDKind(o oid.Oid) string {
	switch o {
	case oid.T_bool:
		return "bool"
	case oid.T_bytea:
		return "bytea"
	case oid.T_char:
		return "char"
	case oid.T_int2:
		return "int2"
	case oid.T_int4:
		return "int4"
	case oid.T_int8:
		return "int8"
	case oid.T_float4:
		return "float4"
	case oid.T_float8:
		return "float8"
	case oid.T_date:
		return "date"
	case oid.T_timestamp:
		return "timestamp"
	case oid.T_timestamptz:
		return "timestamptz"
	case oid.T_interval:
		return "interval"
	case oid.T_uuid:
		return "uuid"
	case oid.T_text, oid.T_varchar, oid.T_bpchar:
		return "text"
	case oid.T_json:
		return "json"
	case oid.T_jsonb:
		return "jsonb"
	case oid.T_numeric:
		return "numeric"
	default:
		return "unknown"
	}
}
