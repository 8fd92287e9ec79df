package pgfrontend

import (
	"encoding/binary"
	"testing"

	"github.com/jeroenrinzema/pgfrontend/internal/buffer"
	"github.com/stretchr/testify/require"
)

// buildReadyForQuery returns the wire bytes for a ReadyForQuery frame
// carrying the given transaction status byte.
func buildReadyForQuery(status byte) []byte {
	return []byte{'Z', 0, 0, 0, 5, status}
}

func TestDecodeNextServerMessage_ReadyForQuery(t *testing.T) {
	t.Parallel()

	buf := buildReadyForQuery('I')
	remaining, frame, err := DecodeNextServerMessage(buf, func(b []byte) ([]byte, error) {
		t.Fatal("readMore should not be called when the buffer already has a full frame")
		return b, nil
	})
	require.NoError(t, err)
	require.Empty(t, remaining)
	require.Equal(t, ServerReady, frame.Type)
	require.Equal(t, TxIdle, frame.TxStatus)
}

func TestDecodeNextServerMessage_RejectsShortLength(t *testing.T) {
	t.Parallel()

	buf := []byte{'Z', 0, 0, 0, 2}
	_, _, err := DecodeNextServerMessage(buf, func(b []byte) ([]byte, error) {
		return b, nil
	})
	require.Error(t, err)
}

func TestDecodeNextServerMessage_RejectsOversizedBody(t *testing.T) {
	t.Parallel()

	buf := []byte{'D', 0, 0, 0, 0}
	binary.BigEndian.PutUint32(buf[1:5], 4+uint32(buffer.DefaultMaxMessageSize)+1)

	_, _, err := DecodeNextServerMessage(buf, func(b []byte) ([]byte, error) {
		t.Fatal("readMore should not be called once the declared size is rejected")
		return b, nil
	})
	require.Error(t, err)

	var sizeErr *buffer.ErrMessageSizeExceeded
	require.ErrorAs(t, err, &sizeErr)
}

// TestDecodeNextServerMessage_PartialFrameRecovery covers scenario 6: a
// buffer containing only the first 3 bytes of a header must trigger
// readMore, and the remaining buffer after decode must contain exactly the
// trailing bytes.
func TestDecodeNextServerMessage_PartialFrameRecovery(t *testing.T) {
	t.Parallel()

	full := buildReadyForQuery('T')
	trailing := []byte{'X', 'Y', 'Z'}
	full = append(full, trailing...)

	partial := full[:3]
	rest := full[3:]

	calls := 0
	readMore := func(b []byte) ([]byte, error) {
		calls++
		return append(b, rest...), nil
	}

	remaining, frame, err := DecodeNextServerMessage(partial, readMore)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, ServerReady, frame.Type)
	require.Equal(t, TxInBlock, frame.TxStatus)
	require.Equal(t, trailing, remaining)
}

func TestDecodeNextServerMessage_DataRowIsOpaque(t *testing.T) {
	t.Parallel()

	body := []byte{0xde, 0xad, 0xbe, 0xef}
	length := uint32(4 + len(body))
	buf := []byte{'D', 0, 0, 0, 0}
	binary.BigEndian.PutUint32(buf[1:5], length)
	buf = append(buf, body...)

	_, frame, err := DecodeNextServerMessage(buf, nil)
	require.NoError(t, err)
	require.Equal(t, ServerDataRow, frame.Type)
	require.Equal(t, body, frame.RawRow)
}

func TestDecodeNextServerMessage_ErrorResponseRequiresFields(t *testing.T) {
	t.Parallel()

	// Missing the required 'M' field.
	body := []byte{'S', 'E', 'R', 'R', 'O', 'R', 0, 'C', '4', '2', '6', '0', '1', 0, 0}
	length := uint32(4 + len(body))
	buf := []byte{'E', 0, 0, 0, 0}
	binary.BigEndian.PutUint32(buf[1:5], length)
	buf = append(buf, body...)

	_, _, err := DecodeNextServerMessage(buf, nil)
	require.Error(t, err)
}

func TestDecodeNextServerMessage_RowDescriptionResolvesTypeName(t *testing.T) {
	t.Parallel()

	body := []byte{0, 1} // one field
	body = append(body, 'i', 'd', 0)
	body = append(body, 0, 0, 0, 0) // table OID
	body = append(body, 0, 1)       // attr num
	body = append(body, 0, 0, 0, 23) // type OID: int4
	body = append(body, 0, 4)        // type size
	body = append(body, 0xff, 0xff, 0xff, 0xff) // type mod -1
	body = append(body, 0, 0)                   // format: text

	length := uint32(4 + len(body))
	buf := []byte{'T', 0, 0, 0, 0}
	binary.BigEndian.PutUint32(buf[1:5], length)
	buf = append(buf, body...)

	_, frame, err := DecodeNextServerMessage(buf, nil)
	require.NoError(t, err)
	require.Len(t, frame.Fields, 1)
	require.Equal(t, "id", frame.Fields[0].Name)
	require.Equal(t, "int4", frame.Fields[0].TypeName)
	require.Equal(t, "int4", frame.Fields[0].Codec)
}

func TestEncodeStartupMessage(t *testing.T) {
	t.Parallel()

	out := EncodeStartupMessage("alice", "mydb")
	require.Greater(t, len(out), 4)

	length := binary.BigEndian.Uint32(out[0:4])
	require.EqualValues(t, len(out), length)

	version := binary.BigEndian.Uint32(out[4:8])
	require.EqualValues(t, Version30, version)
}

func TestEncodePasswordMessage(t *testing.T) {
	t.Parallel()

	out := EncodePasswordMessage("secret")
	require.Equal(t, byte(ClientPassword), out[0])

	length := binary.BigEndian.Uint32(out[1:5])
	require.EqualValues(t, len(out)-1, length)
}
