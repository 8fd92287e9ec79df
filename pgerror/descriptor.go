package pgerror

import "bytes"

// Field tags as they appear in the wire form of ErrorResponse/NoticeResponse.
// https://www.postgresql.org/docs/current/protocol-error-fields.html
const (
	fieldSeverity            byte = 'S'
	fieldSeverityNonLocal    byte = 'V'
	fieldCode                byte = 'C'
	fieldMessage             byte = 'M'
	fieldDetail              byte = 'D'
	fieldHint                byte = 'H'
	fieldPosition            byte = 'P'
	fieldInternalPosition    byte = 'p'
	fieldInternalQuery       byte = 'q'
	fieldContext             byte = 'W'
	fieldSchema              byte = 's'
	fieldTable               byte = 't'
	fieldColumn              byte = 'c'
	fieldDataType            byte = 'd'
	fieldConstraint          byte = 'n'
	fieldSourceFile          byte = 'F'
	fieldSourceLine          byte = 'L'
	fieldSourceRoutine       byte = 'R'
)

// Descriptor is the parsed form of a Postgres error or notice field stream,
// carried by ErrorResponse and NoticeResponse. Required fields are severity,
// code and message; everything else is optional. Detail, hint, position,
// context, constraint and source fields are exposed through small
// per-concern accessors; the non-localized severity, internal position and
// internal query are parsed and stored but have no accessor.
type Descriptor struct {
	severity         Severity
	severityNonLocal string
	code             Code
	message          string

	detail string
	hint   string

	position         int32
	internalPosition int32
	internalQuery    string
	context          string

	schema     string
	table      string
	column     string
	dataType   string
	constraint string

	sourceFile    string
	sourceLine    int32
	sourceRoutine string
}

// Severity returns the localized severity reported by the server.
func (d Descriptor) Severity() Severity { return d.severity }

// Code returns the SQLSTATE code reported by the server.
func (d Descriptor) Code() Code { return d.code }

// Message returns the primary human-readable error message.
func (d Descriptor) Message() string { return d.message }

func (d Descriptor) Error() string {
	return string(d.code) + ": " + d.message
}

// ParseDescriptor parses a sequence of (field-tag-byte, NUL-terminated value)
// pairs terminated by a zero field tag, as carried in the body of
// ErrorResponse and NoticeResponse. A missing required field ('S', 'C', 'M')
// is reported as a ProtocolError.
func ParseDescriptor(body []byte) (Descriptor, error) {
	var d Descriptor
	var haveSeverity, haveCode, haveMessage bool

	for len(body) > 0 {
		tag := body[0]
		body = body[1:]

		if tag == 0 {
			break
		}

		end := bytes.IndexByte(body, 0)
		if end == -1 {
			return Descriptor{}, NewProtocolError("truncated error field value")
		}

		value := string(body[:end])
		body = body[end+1:]

		switch tag {
		case fieldSeverity:
			d.severity = ParseSeverity(value)
			haveSeverity = true
		case fieldSeverityNonLocal:
			d.severityNonLocal = value
		case fieldCode:
			d.code = Code(value)
			haveCode = true
		case fieldMessage:
			d.message = value
			haveMessage = true
		case fieldDetail:
			d.detail = value
		case fieldHint:
			d.hint = value
		case fieldPosition:
			d.position = parseInt32(value)
		case fieldInternalPosition:
			d.internalPosition = parseInt32(value)
		case fieldInternalQuery:
			d.internalQuery = value
		case fieldContext:
			d.context = value
		case fieldSchema:
			d.schema = value
		case fieldTable:
			d.table = value
		case fieldColumn:
			d.column = value
		case fieldDataType:
			d.dataType = value
		case fieldConstraint:
			d.constraint = value
		case fieldSourceFile:
			d.sourceFile = value
		case fieldSourceLine:
			d.sourceLine = parseInt32(value)
		case fieldSourceRoutine:
			d.sourceRoutine = value
		}
	}

	if !haveSeverity || !haveCode || !haveMessage {
		return Descriptor{}, NewProtocolError("error descriptor missing required field")
	}

	return d, nil
}

func parseInt32(s string) int32 {
	var n int32
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int32(r-'0')
	}
	return n
}
