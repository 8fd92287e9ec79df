package pgerror

import "fmt"

// AuthPostgresError indicates the server refused login with a structured
// ErrorResponse during the handshake.
type AuthPostgresError struct {
	Descriptor Descriptor
}

func (e *AuthPostgresError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Descriptor.Error())
}

// AuthNotSupported indicates the server requested an authentication
// mechanism this driver does not implement (GSS, SSPI, or a GSS
// continuation).
type AuthNotSupported struct {
	Mechanism string
}

func (e *AuthNotSupported) Error() string {
	return fmt.Sprintf("unsupported authentication mechanism: %s", e.Mechanism)
}

// AuthInvalidAddress indicates that address resolution for the configured
// host yielded no usable result.
type AuthInvalidAddress struct {
	Host string
	Port uint16
}

func (e *AuthInvalidAddress) Error() string {
	return fmt.Sprintf("no usable address for %s:%d", e.Host, e.Port)
}

// AuthAddressException wraps an OS-level failure encountered while resolving
// or connecting to the configured address.
type AuthAddressException struct {
	Cause error
}

func (e *AuthAddressException) Error() string {
	return fmt.Sprintf("address resolution failed: %s", e.Cause)
}

func (e *AuthAddressException) Unwrap() error { return e.Cause }

// PostgresError wraps a structured ErrorResponse received outside of the
// authentication phase.
type PostgresError struct {
	Descriptor Descriptor
}

func (e *PostgresError) Error() string {
	return e.Descriptor.Error()
}

// ProtocolError indicates malformed wire data: missing required fields,
// unknown tags, truncated frames, or an otherwise illegal protocol state.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return "protocol error: " + e.Message
}

// NewProtocolError constructs a ProtocolError with the given message.
func NewProtocolError(message string) error {
	return &ProtocolError{Message: message}
}

// ReceiverException is the terminal error a background receiver worker
// writes to its outbound queue upon any uncaught failure. It is delivered
// at most once per connection.
type ReceiverException struct {
	Cause error
}

func (e *ReceiverException) Error() string {
	return fmt.Sprintf("receiver terminated: %s", e.Cause)
}

func (e *ReceiverException) Unwrap() error { return e.Cause }
