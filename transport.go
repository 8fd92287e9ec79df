package pgfrontend

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/jeroenrinzema/pgfrontend/pgerror"
)

// Transport is a byte-stream abstraction over either a TCP or a
// Unix-domain socket connection to a server.
type Transport interface {
	Send(b []byte) error
	Receive(max int) ([]byte, error)
	Flush() error
	Close() error
}

// TLSNegotiator upgrades a plain transport to TLS, mirroring the
// teacher's sslSupported/sslUnsupported seam inverted to the client side.
// It is a placeholder seam only: nothing in this package sends SSLRequest
// or calls Negotiate, and DialTransport always returns a cleartext
// transport. No cipher or negotiation policy is specified here.
type TLSNegotiator interface {
	Negotiate(conn net.Conn) (net.Conn, error)
}

// defaultUnixDir is where libpq looks for Unix-domain sockets when no
// directory is otherwise configured.
const defaultUnixDir = "/var/run/postgresql"

// netTransport is the concrete Transport backed by a net.Conn. conn is set
// once at construction and never reassigned; net.Conn itself is safe for
// concurrent Read/Write/Close (a Close unblocks a concurrent Read with an
// error), so the only thing that needs guarding here is running the close
// exactly once.
type netTransport struct {
	conn      net.Conn
	closeOnce sync.Once
	closeErr  error
}

// DialTransport opens a transport for the given settings. host == "" picks
// a Unix-domain socket under defaultUnixDir; a host beginning with "/"
// picks a Unix-domain socket under that directory; anything else dials
// TCP. Any error leaves no partially-acquired socket open.
func DialTransport(ctx context.Context, settings Settings) (Transport, error) {
	network, address := dialTarget(settings)

	var d net.Dialer
	conn, err := d.DialContext(ctx, network, address)
	if err != nil {
		if network == "unix" {
			return nil, &pgerror.AuthInvalidAddress{Host: settings.Host, Port: settings.Port}
		}
		return nil, &pgerror.AuthAddressException{Cause: err}
	}

	return &netTransport{conn: conn}, nil
}

func dialTarget(settings Settings) (network, address string) {
	host := settings.Host

	switch {
	case host == "":
		return "unix", unixSocketPath(defaultUnixDir, settings.Port)
	case strings.HasPrefix(host, "/"):
		return "unix", unixSocketPath(host, settings.Port)
	default:
		return "tcp", net.JoinHostPort(host, strconv.Itoa(int(settings.Port)))
	}
}

// unixSocketPath builds "<dir-without-trailing-slash>/.s.PGSQL.<port>".
func unixSocketPath(dir string, port uint16) string {
	return strings.TrimRight(dir, "/") + fmt.Sprintf("/.s.PGSQL.%d", port)
}

func (t *netTransport) Send(b []byte) error {
	_, err := t.conn.Write(b)
	return err
}

func (t *netTransport) Receive(max int) ([]byte, error) {
	buf := make([]byte, max)
	n, err := t.conn.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func (t *netTransport) Flush() error {
	return nil
}

func (t *netTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.conn.Close()
	})
	return t.closeErr
}
