package pgfrontend

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHashMD5Password covers scenario 2: salt = 0x11223344, user="a",
// password="b". The expected response is "md5" + md5(md5("ba") + salt) in
// lowercase hex.
func TestHashMD5Password(t *testing.T) {
	t.Parallel()

	salt := [4]byte{0x11, 0x22, 0x33, 0x44}

	inner := md5.Sum([]byte("ba"))
	innerHex := hex.EncodeToString(inner[:])
	outer := md5.Sum(append([]byte(innerHex), salt[:]...))
	expected := "md5" + hex.EncodeToString(outer[:])

	require.Equal(t, expected, HashMD5Password("a", "b", salt))
}

func TestDecodeAuthResponse_Ok(t *testing.T) {
	t.Parallel()

	body := make([]byte, 4)
	binary.BigEndian.PutUint32(body, 0)

	resp, err := DecodeAuthResponse(body)
	require.NoError(t, err)
	require.Equal(t, AuthOk, resp.Kind)
}

func TestDecodeAuthResponse_MD5(t *testing.T) {
	t.Parallel()

	body := make([]byte, 8)
	binary.BigEndian.PutUint32(body[0:4], 5)
	copy(body[4:8], []byte{0x11, 0x22, 0x33, 0x44})

	resp, err := DecodeAuthResponse(body)
	require.NoError(t, err)
	require.Equal(t, AuthMD5Required, resp.Kind)
	require.Equal(t, [4]byte{0x11, 0x22, 0x33, 0x44}, resp.MD5Salt)
}

func TestDecodeAuthResponse_UnsupportedMechanism(t *testing.T) {
	t.Parallel()

	body := make([]byte, 4)
	binary.BigEndian.PutUint32(body, 7) // GSS

	resp, err := DecodeAuthResponse(body)
	require.NoError(t, err)
	require.Equal(t, AuthGSSRequired, resp.Kind)
}

func TestDecodeAuthResponse_UnknownCode(t *testing.T) {
	t.Parallel()

	body := make([]byte, 4)
	binary.BigEndian.PutUint32(body, 999)

	_, err := DecodeAuthResponse(body)
	require.Error(t, err)
}
