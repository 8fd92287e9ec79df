package pgfrontend

import (
	"encoding/binary"
	"net"
	"testing"

	"github.com/jeroenrinzema/pgfrontend/pgerror"
	"github.com/stretchr/testify/require"
)

// newPipeTransport returns a client-side Transport backed by net.Pipe and
// the raw server-side net.Conn a test can drive directly.
func newPipeTransport(t *testing.T) (Transport, net.Conn) {
	t.Helper()

	clientConn, serverConn := net.Pipe()
	t.Cleanup(func() {
		clientConn.Close()
		serverConn.Close()
	})

	return &netTransport{conn: clientConn}, serverConn
}

func writeParameterStatus(t *testing.T, conn net.Conn, name, value string) {
	t.Helper()

	body := append([]byte(name), 0)
	body = append(body, append([]byte(value), 0)...)
	writeFrame(t, conn, 'S', body)
}

func writeFrame(t *testing.T, conn net.Conn, tag byte, body []byte) {
	t.Helper()

	header := make([]byte, 5)
	header[0] = tag
	binary.BigEndian.PutUint32(header[1:5], uint32(4+len(body)))
	_, err := conn.Write(append(header, body...))
	require.NoError(t, err)
}

// TestHandshake_CleartextAuth covers scenario 1: cleartext auth followed by
// parameter capture up to ReadyForQuery.
func TestHandshake_CleartextAuth(t *testing.T) {
	t.Parallel()

	client, server := newPipeTransport(t)

	done := make(chan struct{})
	go func() {
		defer close(done)

		// StartupMessage.
		lenBuf := make([]byte, 4)
		_, err := server.Read(lenBuf)
		require.NoError(t, err)
		total := binary.BigEndian.Uint32(lenBuf)
		rest := make([]byte, total-4)
		_, err = server.Read(rest)
		require.NoError(t, err)

		// AuthenticationCleartextPassword.
		writeFrame(t, server, 'R', []byte{0, 0, 0, 3})

		// PasswordMessage.
		tagBuf := make([]byte, 1)
		_, err = server.Read(tagBuf)
		require.NoError(t, err)
		require.Equal(t, byte(ClientPassword), tagBuf[0])
		_, err = server.Read(lenBuf)
		require.NoError(t, err)
		total = binary.BigEndian.Uint32(lenBuf)
		passwordBody := make([]byte, total-4)
		_, err = server.Read(passwordBody)
		require.NoError(t, err)
		require.Equal(t, "p\x00", string(passwordBody))

		// AuthenticationOk.
		writeFrame(t, server, 'R', []byte{0, 0, 0, 0})

		writeParameterStatus(t, server, "server_version", "9.6.3")
		writeParameterStatus(t, server, "server_encoding", "UTF8")
		writeParameterStatus(t, server, "integer_datetimes", "on")

		writeFrame(t, server, 'Z', []byte{'I'})
	}()

	params, err := runHandshake(client, Settings{User: "u", Database: "d", Password: "p"}, nil)
	require.NoError(t, err)
	<-done

	require.Equal(t, 9, params.ServerVersionMajor)
	require.Equal(t, 6, params.ServerVersionMinor)
	require.Equal(t, 3, params.ServerVersionRevision)
	require.Equal(t, "UTF8", params.ServerEncoding)
	require.True(t, params.IntegerDatetimes)
}

// TestHandshake_ErrorAtStartup covers scenario 3.
func TestHandshake_ErrorAtStartup(t *testing.T) {
	t.Parallel()

	client, server := newPipeTransport(t)

	done := make(chan struct{})
	go func() {
		defer close(done)

		lenBuf := make([]byte, 4)
		_, err := server.Read(lenBuf)
		require.NoError(t, err)
		total := binary.BigEndian.Uint32(lenBuf)
		rest := make([]byte, total-4)
		_, err = server.Read(rest)
		require.NoError(t, err)

		body := []byte{}
		body = append(body, 'S')
		body = append(body, []byte("FATAL\x00")...)
		body = append(body, 'C')
		body = append(body, []byte("28P01\x00")...)
		body = append(body, 'M')
		body = append(body, []byte("password authentication failed\x00")...)
		body = append(body, 0)

		writeFrame(t, server, 'E', body)
	}()

	_, err := runHandshake(client, Settings{User: "u", Database: "d", Password: "wrong"}, nil)
	<-done

	require.Error(t, err)
	authErr, ok := err.(*pgerror.AuthPostgresError)
	require.True(t, ok)
	require.Equal(t, pgerror.SeverityFatal, authErr.Descriptor.Severity())
	require.Equal(t, pgerror.Code("28P01"), authErr.Descriptor.Code())
	require.Equal(t, "password authentication failed", authErr.Descriptor.Message())
}
