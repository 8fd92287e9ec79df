package pgtype

import (
	"fmt"

	"github.com/google/uuid"
)

// DecodeUUID decodes 16 network-order bytes into a uuid.UUID.
func DecodeUUID(b []byte) (uuid.UUID, error) {
	if len(b) != 16 {
		return uuid.UUID{}, fmt.Errorf("pgtype: uuid expects 16 bytes, got %d", len(b))
	}

	var u uuid.UUID
	copy(u[:], b)
	return u, nil
}

// EncodeUUID encodes a uuid.UUID as its 16 network-order bytes.
func EncodeUUID(u uuid.UUID) []byte {
	out := make([]byte, 16)
	copy(out, u[:])
	return out
}
