package pgfrontend

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Conn owns the transport, the background receiver, captured connection
// parameters, and the outbound queue through which asynchronous results
// reach consumers. It is safe to read parameters and send from multiple
// goroutines; only the receiver worker reads from the transport.
type Conn struct {
	transport  Transport
	receiver   *receiver
	parameters ConnectionParameters
	logger     *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Option configures the behavior of a single Connect call, independently
// of the Settings used to dial, in the teacher's functional-options idiom.
type Option func(*connectOptions)

type connectOptions struct {
	logger   *slog.Logger
	filter   ServerMessageFilter
	onNotify NotificationHandler
}

// WithLogger routes connection diagnostics through the given logger instead
// of slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *connectOptions) { o.logger = logger }
}

// WithFilter selects a non-default server-message filter ("all-message
// mode" with a caller-chosen predicate), intended for tests and
// introspection.
func WithFilter(filter ServerMessageFilter) Option {
	return func(o *connectOptions) { o.filter = filter }
}

// WithNotificationHandler registers a handler invoked synchronously from
// the receiver for every NotificationResponse.
func WithNotificationHandler(fn NotificationHandler) Option {
	return func(o *connectOptions) { o.onNotify = fn }
}

// Connect performs the full C5 lifecycle: acquire a transport, run the
// handshake, and spawn the background receiver. On any failure before the
// receiver starts, the transport is closed before the error is returned.
func Connect(ctx context.Context, settings Settings, opts ...Option) (*Conn, error) {
	cfg := connectOptions{filter: DefaultServerMessageFilter}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	transport, err := DialTransport(ctx, settings)
	if err != nil {
		return nil, err
	}

	parameters, err := runHandshake(transport, settings, cfg.logger)
	if err != nil {
		transport.Close()
		return nil, err
	}

	r := startReceiver(transport, cfg.logger, cfg.filter, cfg.onNotify)

	return &Conn{
		transport:  transport,
		receiver:   r,
		parameters: parameters,
		logger:     cfg.logger,
	}, nil
}

// ServerVersion returns the captured (major, minor, revision, suffix)
// server version tuple.
func (c *Conn) ServerVersion() (major, minor, revision int, suffix string) {
	return c.parameters.ServerVersionMajor, c.parameters.ServerVersionMinor,
		c.parameters.ServerVersionRevision, c.parameters.ServerVersionSuffix
}

// ServerEncoding returns the captured server_encoding parameter.
func (c *Conn) ServerEncoding() string {
	return c.parameters.ServerEncoding
}

// IntegerDatetimes returns the captured integer_datetimes parameter.
func (c *Conn) IntegerDatetimes() bool {
	return c.parameters.IntegerDatetimes
}

// Results returns the outbound queue consumers read decoded frames (or the
// terminal receiver error) from.
func (c *Conn) Results() *OutboundQueue {
	return c.receiver.queue
}

// SendEncoded writes raw, already-framed bytes through the transport. No
// additional framing is added beyond what the caller has already encoded.
func (c *Conn) SendEncoded(encoded []byte) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return fmt.Errorf("pgfrontend: send on closed connection")
	}

	return c.transport.Send(encoded)
}

// Close stops the receiver (if it is still live) and closes the transport.
// It is idempotent: a second call is a no-op.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	c.receiver.stop()
	return c.transport.Close()
}
