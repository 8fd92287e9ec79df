package pgtype

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUUIDRoundTrip(t *testing.T) {
	t.Parallel()

	u := uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479")
	decoded, err := DecodeUUID(EncodeUUID(u))
	require.NoError(t, err)
	require.Equal(t, u, decoded)
}

func TestDecodeUUID_RejectsWrongLength(t *testing.T) {
	t.Parallel()

	_, err := DecodeUUID([]byte{1, 2, 3})
	require.Error(t, err)
}
