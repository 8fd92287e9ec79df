package pgtype

import (
	"testing"

	"github.com/lib/pq/oid"
	"github.com/stretchr/testify/require"
)

func TestBoolRoundTrip(t *testing.T) {
	t.Parallel()

	v, err := DecodeBool(EncodeBool(true))
	require.NoError(t, err)
	require.True(t, v)

	v, err = DecodeBool(EncodeBool(false))
	require.NoError(t, err)
	require.False(t, v)

	_, err = DecodeBool([]byte{})
	require.Error(t, err)
}

func TestByteaIsOpaque(t *testing.T) {
	t.Parallel()

	in := []byte{0xde, 0xad, 0xbe, 0xef}
	out, err := DecodeBytea(in)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestDecodeChar(t *testing.T) {
	t.Parallel()

	v, err := DecodeChar([]byte{'x'})
	require.NoError(t, err)
	require.Equal(t, byte('x'), v)

	_, err = DecodeChar([]byte{'a', 'b'})
	require.Error(t, err)
}

func TestIntRoundTrip(t *testing.T) {
	t.Parallel()

	v2, err := DecodeInt2(EncodeInt2(-1234))
	require.NoError(t, err)
	require.EqualValues(t, -1234, v2)

	v4, err := DecodeInt4(EncodeInt4(-123456789))
	require.NoError(t, err)
	require.EqualValues(t, -123456789, v4)

	v8, err := DecodeInt8(EncodeInt8(-1234567890123456789))
	require.NoError(t, err)
	require.EqualValues(t, -1234567890123456789, v8)
}

func TestFloatRoundTrip(t *testing.T) {
	t.Parallel()

	v4, err := DecodeFloat4(EncodeFloat4(3.14))
	require.NoError(t, err)
	require.InDelta(t, 3.14, v4, 0.0001)

	v8, err := DecodeFloat8(EncodeFloat8(2.718281828))
	require.NoError(t, err)
	require.InDelta(t, 2.718281828, v8, 0.000000001)
}

func TestTextRoundTrip(t *testing.T) {
	t.Parallel()

	v, err := DecodeText(EncodeText("hello, world"))
	require.NoError(t, err)
	require.Equal(t, "hello, world", v)
}

func TestJSONBRoundTrip(t *testing.T) {
	t.Parallel()

	body := []byte(`{"a":1}`)
	encoded := EncodeJSONB(body)
	require.Equal(t, byte(0x01), encoded[0])

	decoded, err := DecodeJSONB(encoded)
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestDecodeJSONB_RejectsUnknownVersion(t *testing.T) {
	t.Parallel()

	_, err := DecodeJSONB([]byte{0x02, 'x'})
	require.Error(t, err)

	_, err = DecodeJSONB(nil)
	require.Error(t, err)
}

func TestOIDKind(t *testing.T) {
	t.Parallel()

	cases := map[oid.Oid]string{
		oid.T_bool:        "bool",
		oid.T_bytea:       "bytea",
		oid.T_int4:        "int4",
		oid.T_int8:        "int8",
		oid.T_float8:      "float8",
		oid.T_date:        "date",
		oid.T_timestamptz: "timestamptz",
		oid.T_uuid:        "uuid",
		oid.T_jsonb:       "jsonb",
		oid.T_numeric:     "numeric",
	}

	for o, want := range cases {
		require.Equal(t, want, OIDKind(o))
	}

	require.Equal(t, "unknown", OIDKind(oid.Oid(999999)))
}
