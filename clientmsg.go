package pgfrontend

import (
	"bytes"
	"log/slog"

	"github.com/jeroenrinzema/pgfrontend/internal/buffer"
)

// EncodeStartupMessage builds the untyped StartupMessage that opens a
// connection: the protocol version followed by NUL-terminated
// key/value parameter pairs and a final zero byte.
func EncodeStartupMessage(user, database string) []byte {
	var sink bytes.Buffer
	w := buffer.NewWriter(slog.Default(), &sink)
	w.StartUntyped()
	w.AddInt32(int32(Version30))
	w.AddCString("user")
	w.AddCString(user)
	w.AddCString("database")
	w.AddCString(database)
	w.AddNullTerminate()
	w.End("StartupMessage") //nolint:errcheck
	return sink.Bytes()
}

// EncodePasswordMessage builds a PasswordMessage carrying either a plain
// password or a pre-hashed "md5..." response, per the handshake's current
// auth branch.
func EncodePasswordMessage(response string) []byte {
	var sink bytes.Buffer
	w := buffer.NewWriter(slog.Default(), &sink)
	w.Start(byte(ClientPassword))
	w.AddCString(response)
	w.End("PasswordMessage") //nolint:errcheck
	return sink.Bytes()
}

// EncodeSimpleQuery builds a SimpleQuery ('Q') message.
func EncodeSimpleQuery(query string) []byte {
	var sink bytes.Buffer
	w := buffer.NewWriter(slog.Default(), &sink)
	w.Start(byte(ClientSimpleQuery))
	w.AddCString(query)
	w.End("Query") //nolint:errcheck
	return sink.Bytes()
}

// EncodeTerminate builds the empty-bodied Terminate ('X') message.
func EncodeTerminate() []byte {
	var sink bytes.Buffer
	w := buffer.NewWriter(slog.Default(), &sink)
	w.Start(byte(ClientTerminate))
	w.End("Terminate") //nolint:errcheck
	return sink.Bytes()
}

// EncodeSync builds the empty-bodied Sync ('S') message.
func EncodeSync() []byte {
	var sink bytes.Buffer
	w := buffer.NewWriter(slog.Default(), &sink)
	w.Start(byte(ClientSync))
	w.End("Sync") //nolint:errcheck
	return sink.Bytes()
}

// EncodeFlush builds the empty-bodied Flush ('H') message.
func EncodeFlush() []byte {
	var sink bytes.Buffer
	w := buffer.NewWriter(slog.Default(), &sink)
	w.Start(byte(ClientFlush))
	w.End("Flush") //nolint:errcheck
	return sink.Bytes()
}

// EncodeOpaque frames a pre-built body under the given client message tag.
// Parse, Bind, Describe, Execute, Close, and the Copy family are not
// interpreted by this layer; callers construct their bodies and hand them
// here purely for framing.
func EncodeOpaque(t ClientMessage, body []byte) []byte {
	var sink bytes.Buffer
	w := buffer.NewWriter(slog.Default(), &sink)
	w.Start(byte(t))
	w.AddBytes(body)
	w.End(t.String()) //nolint:errcheck
	return sink.Bytes()
}
