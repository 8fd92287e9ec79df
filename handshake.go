package pgfrontend

import (
	"log/slog"

	"github.com/jeroenrinzema/pgfrontend/pgerror"
)

// ConnectionParameters are the server-reported values captured once during
// the handshake and immutable thereafter. Other ParameterStatus messages
// observed later in the connection's life are not stored here.
type ConnectionParameters struct {
	ServerVersionMajor    int
	ServerVersionMinor    int
	ServerVersionRevision int
	ServerVersionSuffix   string

	ServerEncoding string

	IntegerDatetimes bool
}

// transportReadMore adapts a Transport's Receive method into the ReadMore
// callback the frame decoder expects: append newly received bytes to buf.
func transportReadMore(t Transport) ReadMore {
	return func(buf []byte) ([]byte, error) {
		chunk, err := t.Receive(4096)
		if err != nil {
			return buf, err
		}
		return append(buf, chunk...), nil
	}
}

// runHandshake drives the Sending Startup / Awaiting Auth / Collecting
// Parameters state machine described by the handshake spec, through first
// ReadyForQuery. On any failure the caller is responsible for closing the
// transport.
func runHandshake(t Transport, settings Settings, logger *slog.Logger) (ConnectionParameters, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := t.Send(EncodeStartupMessage(settings.User, settings.Database)); err != nil {
		return ConnectionParameters{}, err
	}

	readMore := transportReadMore(t)
	var buf []byte

	if err := awaitAuth(t, settings, logger, readMore, &buf); err != nil {
		return ConnectionParameters{}, err
	}

	return collectParameters(logger, readMore, &buf)
}

func awaitAuth(t Transport, settings Settings, logger *slog.Logger, readMore ReadMore, buf *[]byte) error {
	for {
		remaining, frame, err := DecodeNextServerMessage(*buf, readMore)
		*buf = remaining
		if err != nil {
			return err
		}

		if frame.Type == ServerErrorResponse {
			return &pgerror.AuthPostgresError{Descriptor: frame.Descriptor}
		}

		if frame.Type != ServerAuth {
			logger.Debug("ignoring unexpected message while awaiting auth", slog.String("type", frame.Type.String()))
			continue
		}

		switch frame.Auth.Kind {
		case AuthOk:
			return nil
		case AuthCleartextRequired:
			if err := t.Send(EncodePasswordMessage(settings.Password)); err != nil {
				return err
			}
		case AuthMD5Required:
			response := HashMD5Password(settings.User, settings.Password, frame.Auth.MD5Salt)
			if err := t.Send(EncodePasswordMessage(response)); err != nil {
				return err
			}
		case AuthGSSRequired:
			return &pgerror.AuthNotSupported{Mechanism: "GSS"}
		case AuthSSPIRequired:
			return &pgerror.AuthNotSupported{Mechanism: "SSPI"}
		case AuthGSSContinue:
			return &pgerror.AuthNotSupported{Mechanism: "GSS"}
		case AuthErrorResponse:
			return &pgerror.AuthPostgresError{Descriptor: frame.Auth.Descriptor}
		}
	}
}

func collectParameters(logger *slog.Logger, readMore ReadMore, buf *[]byte) (ConnectionParameters, error) {
	raw := make(map[string]string)

	for {
		remaining, frame, err := DecodeNextServerMessage(*buf, readMore)
		*buf = remaining
		if err != nil {
			return ConnectionParameters{}, err
		}

		switch frame.Type {
		case ServerParameterStatus:
			raw[frame.ParameterName] = frame.ParameterValue
		case ServerReady:
			return finalizeParameters(raw)
		default:
			logger.Debug("ignoring message while collecting parameters", slog.String("type", frame.Type.String()))
		}
	}
}

func finalizeParameters(raw map[string]string) (ConnectionParameters, error) {
	version, ok := raw["server_version"]
	if !ok {
		return ConnectionParameters{}, pgerror.NewProtocolError("missing server_version parameter")
	}

	encoding, ok := raw["server_encoding"]
	if !ok {
		return ConnectionParameters{}, pgerror.NewProtocolError("missing server_encoding parameter")
	}

	datetimes, ok := raw["integer_datetimes"]
	if !ok {
		return ConnectionParameters{}, pgerror.NewProtocolError("missing integer_datetimes parameter")
	}

	major, minor, revision, suffix, err := parseServerVersion(version)
	if err != nil {
		return ConnectionParameters{}, err
	}

	return ConnectionParameters{
		ServerVersionMajor:    major,
		ServerVersionMinor:    minor,
		ServerVersionRevision: revision,
		ServerVersionSuffix:   suffix,
		ServerEncoding:        encoding,
		IntegerDatetimes:      parseIntegerDatetimes(datetimes),
	}, nil
}

// parseServerVersion splits the leading run of [0-9.] bytes on '.' into
// major/minor/revision (missing components default to 0); the remainder is
// retained verbatim as a descriptor suffix. A non-numeric prefix is a
// protocol error.
func parseServerVersion(version string) (major, minor, revision int, suffix string, err error) {
	i := 0
	for i < len(version) && (version[i] == '.' || (version[i] >= '0' && version[i] <= '9')) {
		i++
	}

	if i == 0 {
		return 0, 0, 0, "", pgerror.NewProtocolError("server_version does not start with a numeric component")
	}

	numeric := version[:i]
	suffix = version[i:]

	parts := []int{0, 0, 0}
	idx := 0
	cur := 0
	seenDigit := false
	for _, c := range numeric {
		if c == '.' {
			if idx < 3 {
				parts[idx] = cur
			}
			idx++
			cur = 0
			seenDigit = false
			continue
		}
		cur = cur*10 + int(c-'0')
		seenDigit = true
	}
	if seenDigit && idx < 3 {
		parts[idx] = cur
	}

	return parts[0], parts[1], parts[2], suffix, nil
}

// parseIntegerDatetimes maps "on"/"yes"/"1" to true; anything else to
// false. There is no error case.
func parseIntegerDatetimes(value string) bool {
	switch value {
	case "on", "yes", "1":
		return true
	default:
		return false
	}
}
