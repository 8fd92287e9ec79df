package pgfrontend

import "github.com/jeroenrinzema/pgfrontend/pgerror"

// TransactionStatus is the single ASCII byte carried by ReadyForQuery.
type TransactionStatus byte

const (
	TxIdle    TransactionStatus = 'I'
	TxInBlock TransactionStatus = 'T'
	TxFailed  TransactionStatus = 'E'
)

// ParseTransactionStatus decodes the ReadyForQuery status byte, returning a
// ProtocolError for anything other than 'I', 'T', 'E'.
func ParseTransactionStatus(b byte) (TransactionStatus, error) {
	switch TransactionStatus(b) {
	case TxIdle, TxInBlock, TxFailed:
		return TransactionStatus(b), nil
	default:
		return 0, pgerror.NewProtocolError("unknown transaction status byte")
	}
}

func (s TransactionStatus) String() string {
	switch s {
	case TxIdle:
		return "idle"
	case TxInBlock:
		return "in-transaction"
	case TxFailed:
		return "failed"
	default:
		return "unknown"
	}
}
