package pgfrontend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDialTarget(t *testing.T) {
	t.Parallel()

	network, address := dialTarget(Settings{Port: 5432})
	require.Equal(t, "unix", network)
	require.Equal(t, defaultUnixDir+"/.s.PGSQL.5432", address)

	network, address = dialTarget(Settings{Host: "/tmp/sockets", Port: 5433})
	require.Equal(t, "unix", network)
	require.Equal(t, "/tmp/sockets/.s.PGSQL.5433", address)

	network, address = dialTarget(Settings{Host: "db.internal", Port: 5432})
	require.Equal(t, "tcp", network)
	require.Equal(t, "db.internal:5432", address)
}

func TestUnixSocketPath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/var/run/postgresql/.s.PGSQL.5432", unixSocketPath("/var/run/postgresql", 5432))
	require.Equal(t, "/var/run/postgresql/.s.PGSQL.5432", unixSocketPath("/var/run/postgresql/", 5432))
}
