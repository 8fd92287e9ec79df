// Command pgfrontend-probe dials a PostgreSQL server, runs the startup
// handshake, and prints the parameters captured along the way. It exists as
// a single generalized diagnostic tool rather than one example binary per
// scenario.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	wire "github.com/jeroenrinzema/pgfrontend"
)

func main() {
	host := flag.String("host", "", "server host, blank for the default Unix socket directory")
	port := flag.Uint("port", 5432, "server port")
	user := flag.String("user", "postgres", "user to authenticate as")
	password := flag.String("password", "", "password to authenticate with")
	database := flag.String("database", "postgres", "database to connect to")
	timeout := flag.Duration("timeout", 10*time.Second, "dial and handshake timeout")
	flag.Parse()

	logger := log.New(os.Stdout, "[pgfrontend-probe] ", log.LstdFlags)

	settings := wire.Settings{
		Host:     *host,
		Port:     uint16(*port),
		User:     *user,
		Password: *password,
		Database: *database,
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, err := wire.Connect(ctx, settings)
	if err != nil {
		logger.Fatalf("connect failed: %s", err)
	}
	defer conn.Close()

	major, minor, revision, suffix := conn.ServerVersion()
	logger.Printf("server_version = %d.%d.%d%s", major, minor, revision, suffix)
	logger.Printf("server_encoding = %s", conn.ServerEncoding())
	logger.Printf("integer_datetimes = %t", conn.IntegerDatetimes())
}
