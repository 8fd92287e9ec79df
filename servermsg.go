package pgfrontend

import "github.com/jeroenrinzema/pgfrontend/pgerror"

// ServerFrame is the decoded form of a single back-end message: its tag
// plus a structured payload. Exactly one of the typed fields is populated,
// selected by Type.
type ServerFrame struct {
	Type ServerMessage

	// BackendKeyData
	ProcessID uint32
	SecretKey uint32

	// CommandComplete
	Command CommandResult

	// DataRow — the body is intentionally left opaque; parsing requires a
	// row descriptor the codec does not have.
	RawRow []byte

	// ErrorResponse / NoticeResponse
	Descriptor pgerror.Descriptor

	// NotificationResponse
	Notification Notification

	// ParameterDescription
	ParameterOIDs []uint32

	// ParameterStatus
	ParameterName  string
	ParameterValue string

	// ReadyForQuery
	TxStatus TransactionStatus

	// RowDescription
	Fields []FieldDescription

	// Authentication
	Auth AuthResponse
}

// Notification carries a NOTIFY payload delivered out of band of the
// normal query cycle.
type Notification struct {
	ProcessID uint32
	Channel   string
	Payload   string
}

// FieldDescription describes one column of a RowDescription.
type FieldDescription struct {
	Name          string
	TableOID      uint32
	ColumnAttrNum int16
	DataTypeOID   uint32
	DataTypeSize  int16
	TypeModifier  int32
	Format        int16

	// TypeName is the canonical name pgx's built-in OID registry associates
	// with DataTypeOID, when it recognizes it. Empty for OIDs outside its
	// registry; decoding never depends on it.
	TypeName string

	// Codec names which pgtype decoder DataTypeOID selects ("int4", "uuid",
	// "numeric", ...), or "unknown" for an OID this module has no codec
	// for. Callers dispatch DataRow column bytes through pgtype using this.
	Codec string
}
