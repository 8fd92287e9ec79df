package pgfrontend

import (
	"net"
	"testing"
	"time"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/require"
)

// TestReceiver_DefaultFilter covers scenario 5: BindComplete, RowDescription,
// three DataRows, CommandComplete and ReadyForQuery are fed in sequence; only
// RowDescription and ReadyForQuery survive the default filter.
func TestReceiver_DefaultFilter(t *testing.T) {
	t.Parallel()

	clientConn, serverConn := net.Pipe()
	t.Cleanup(func() { clientConn.Close(); serverConn.Close() })

	transport := &netTransport{conn: clientConn}
	r := startReceiver(transport, slogt.New(t), nil, nil)

	go func() {
		writeFrame(t, serverConn, byte(ServerBindComplete), nil)
		writeFrame(t, serverConn, byte(ServerRowDescription), []byte{0, 0})
		for i := 0; i < 3; i++ {
			writeFrame(t, serverConn, byte(ServerDataRow), []byte{0, 0, 0, 0})
		}
		writeFrame(t, serverConn, byte(ServerCommandComplete), []byte("SELECT 3\x00"))
		writeFrame(t, serverConn, byte(ServerReady), []byte{'I'})
	}()

	item, ok := r.queue.Receive()
	require.True(t, ok)
	require.NoError(t, item.Err)
	require.Equal(t, ServerRowDescription, item.Frame.Type)

	item, ok = r.queue.Receive()
	require.True(t, ok)
	require.NoError(t, item.Err)
	require.Equal(t, ServerReady, item.Frame.Type)

	r.stop()
}

// TestReceiver_NotificationBypassesFilter covers the notification half of
// scenario 5: a NotificationResponse invokes the handler regardless of the
// filter's verdict on it, and under the default filter it is not enqueued.
func TestReceiver_NotificationBypassesFilter(t *testing.T) {
	t.Parallel()

	clientConn, serverConn := net.Pipe()
	t.Cleanup(func() { clientConn.Close(); serverConn.Close() })

	transport := &netTransport{conn: clientConn}

	notified := make(chan Notification, 1)
	handler := func(n Notification) { notified <- n }

	r := startReceiver(transport, nil, nil, handler)

	go func() {
		body := []byte{0, 0, 0, 42}
		body = append(body, []byte("channel\x00")...)
		body = append(body, []byte("payload\x00")...)
		writeFrame(t, serverConn, byte(ServerNotificationResponse), body)
		writeFrame(t, serverConn, byte(ServerReady), []byte{'I'})
	}()

	select {
	case n := <-notified:
		require.Equal(t, uint32(42), n.ProcessID)
		require.Equal(t, "channel", n.Channel)
		require.Equal(t, "payload", n.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("notification handler was not invoked")
	}

	item, ok := r.queue.Receive()
	require.True(t, ok)
	require.Equal(t, ServerReady, item.Frame.Type)

	r.stop()
}

// TestReceiver_StopSuppressesTerminalError verifies that closing the
// transport via stop() does not surface a ReceiverException: the worker
// must recognize its own shutdown and exit silently.
func TestReceiver_StopSuppressesTerminalError(t *testing.T) {
	t.Parallel()

	clientConn, serverConn := net.Pipe()
	t.Cleanup(func() { clientConn.Close(); serverConn.Close() })

	transport := &netTransport{conn: clientConn}
	r := startReceiver(transport, nil, nil, nil)

	r.stop()

	_, ok := r.queue.Receive()
	require.False(t, ok, "queue should close without a terminal error after an intentional stop")
}
