package pgfrontend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTransactionStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseTransactionStatus('I')
	require.NoError(t, err)
	require.Equal(t, TxIdle, status)

	status, err = ParseTransactionStatus('T')
	require.NoError(t, err)
	require.Equal(t, TxInBlock, status)

	status, err = ParseTransactionStatus('E')
	require.NoError(t, err)
	require.Equal(t, TxFailed, status)

	_, err = ParseTransactionStatus('?')
	require.Error(t, err)
}
