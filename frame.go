package pgfrontend

import (
	"encoding/binary"

	"github.com/jeroenrinzema/pgfrontend/internal/buffer"
	"github.com/jeroenrinzema/pgfrontend/pgerror"
	"github.com/jeroenrinzema/pgfrontend/pgtype"
	"github.com/lib/pq/oid"
)

// headerSize is the length of a frame's tag byte plus its 4-byte big-endian
// length field.
const headerSize = 5

// ReadMore supplies additional bytes to a decoder that has run out of
// buffered data. It appends to (and may reallocate) the given buffer and
// returns the enlarged result. Implementations may block a goroutine
// (synchronous transport) or resume a coroutine (asynchronous transport);
// the decoder shape does not change either way.
type ReadMore func(buf []byte) ([]byte, error)

// DecodeNextServerMessage decodes exactly one back-end message from the
// front of buf, requesting more bytes through readMore as needed first to
// complete the 5-byte header and then to complete the declared body. It
// returns the frame and whatever of buf was not consumed.
func DecodeNextServerMessage(buf []byte, readMore ReadMore) ([]byte, ServerFrame, error) {
	var err error
	for len(buf) < headerSize {
		buf, err = readMore(buf)
		if err != nil {
			return buf, ServerFrame{}, err
		}
	}

	tag := ServerMessage(buf[0])
	length := binary.BigEndian.Uint32(buf[1:headerSize])
	if length < 4 {
		return buf, ServerFrame{}, pgerror.NewProtocolError("frame length shorter than its own header")
	}

	bodyLen := int(length) - 4
	if bodyLen > buffer.DefaultMaxMessageSize {
		return buf, ServerFrame{}, buffer.NewMessageSizeExceeded(buffer.DefaultMaxMessageSize, bodyLen)
	}

	total := headerSize + bodyLen

	for len(buf) < total {
		buf, err = readMore(buf)
		if err != nil {
			return buf, ServerFrame{}, err
		}
	}

	body := buf[headerSize:total]
	remaining := buf[total:]

	frame, err := decodeServerBody(tag, body)
	if err != nil {
		return remaining, ServerFrame{}, err
	}

	return remaining, frame, nil
}

func decodeServerBody(tag ServerMessage, body []byte) (ServerFrame, error) {
	switch tag {
	case ServerBackendKeyData:
		r := buffer.NewReader(body)
		pid, err1 := r.GetUint32()
		secret, err2 := r.GetUint32()
		if err1 != nil || err2 != nil {
			return ServerFrame{}, pgerror.NewProtocolError("truncated BackendKeyData")
		}
		return ServerFrame{Type: tag, ProcessID: pid, SecretKey: secret}, nil

	case ServerBindComplete, ServerCloseComplete, ServerEmptyQueryResponse,
		ServerNoData, ServerParseComplete, ServerPortalSuspended:
		return ServerFrame{Type: tag}, nil

	case ServerCommandComplete:
		r := buffer.NewReader(body)
		tagStr, err := r.GetString()
		if err != nil {
			return ServerFrame{}, pgerror.NewProtocolError("truncated CommandComplete")
		}
		return ServerFrame{Type: tag, Command: ParseCommandResult(tagStr)}, nil

	case ServerDataRow:
		cp := make([]byte, len(body))
		copy(cp, body)
		return ServerFrame{Type: tag, RawRow: cp}, nil

	case ServerErrorResponse, ServerNoticeResponse:
		desc, err := pgerror.ParseDescriptor(body)
		if err != nil {
			return ServerFrame{}, err
		}
		return ServerFrame{Type: tag, Descriptor: desc}, nil

	case ServerNotificationResponse:
		r := buffer.NewReader(body)
		pid, err := r.GetUint32()
		if err != nil {
			return ServerFrame{}, pgerror.NewProtocolError("truncated NotificationResponse")
		}
		channel, err := r.GetString()
		if err != nil {
			return ServerFrame{}, pgerror.NewProtocolError("truncated NotificationResponse")
		}
		payload, err := r.GetString()
		if err != nil {
			return ServerFrame{}, pgerror.NewProtocolError("truncated NotificationResponse")
		}
		return ServerFrame{Type: tag, Notification: Notification{ProcessID: pid, Channel: channel, Payload: payload}}, nil

	case ServerParameterDescription:
		r := buffer.NewReader(body)
		n, err := r.GetUint16()
		if err != nil {
			return ServerFrame{}, pgerror.NewProtocolError("truncated ParameterDescription")
		}
		oids := make([]uint32, n)
		for i := range oids {
			oids[i], err = r.GetUint32()
			if err != nil {
				return ServerFrame{}, pgerror.NewProtocolError("truncated ParameterDescription")
			}
		}
		return ServerFrame{Type: tag, ParameterOIDs: oids}, nil

	case ServerParameterStatus:
		r := buffer.NewReader(body)
		name, err := r.GetString()
		if err != nil {
			return ServerFrame{}, pgerror.NewProtocolError("truncated ParameterStatus")
		}
		value, err := r.GetString()
		if err != nil {
			return ServerFrame{}, pgerror.NewProtocolError("truncated ParameterStatus")
		}
		return ServerFrame{Type: tag, ParameterName: name, ParameterValue: value}, nil

	case ServerReady:
		if len(body) != 1 {
			return ServerFrame{}, pgerror.NewProtocolError("malformed ReadyForQuery body")
		}
		status, err := ParseTransactionStatus(body[0])
		if err != nil {
			return ServerFrame{}, err
		}
		return ServerFrame{Type: tag, TxStatus: status}, nil

	case ServerRowDescription:
		r := buffer.NewReader(body)
		n, err := r.GetUint16()
		if err != nil {
			return ServerFrame{}, pgerror.NewProtocolError("truncated RowDescription")
		}

		fields := make([]FieldDescription, n)
		for i := range fields {
			name, err := r.GetString()
			if err != nil {
				return ServerFrame{}, pgerror.NewProtocolError("truncated RowDescription field")
			}

			tableOID, err1 := r.GetUint32()
			attrNum, err2 := r.GetInt16()
			typeOID, err3 := r.GetUint32()
			typeSize, err4 := r.GetInt16()
			typeMod, err5 := r.GetInt32()
			format, err6 := r.GetInt16()
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil || err6 != nil {
				return ServerFrame{}, pgerror.NewProtocolError("truncated RowDescription field")
			}

			typeName, _ := pgtype.OIDName(typeOID)

			fields[i] = FieldDescription{
				Name:          name,
				TableOID:      tableOID,
				ColumnAttrNum: attrNum,
				DataTypeOID:   typeOID,
				DataTypeSize:  typeSize,
				TypeModifier:  typeMod,
				Format:        format,
				TypeName:      typeName,
				Codec:         pgtype.OIDKind(oid.Oid(typeOID)),
			}
		}
		return ServerFrame{Type: tag, Fields: fields}, nil

	case ServerAuth:
		auth, err := DecodeAuthResponse(body)
		if err != nil {
			return ServerFrame{}, err
		}
		return ServerFrame{Type: tag, Auth: auth}, nil

	default:
		return ServerFrame{}, pgerror.NewProtocolError("unknown server message tag")
	}
}
