package pgfrontend

import (
	"log/slog"
	"sync/atomic"
	"weak"

	"github.com/jeroenrinzema/pgfrontend/pgerror"
)

// QueueItem is the element type carried by the outbound queue: either a
// decoded frame or — at most once, and only as the final element — a
// terminal receiver error.
type QueueItem struct {
	Frame ServerFrame
	Err   error
}

// OutboundQueue is the single-producer/multi-consumer unbounded FIFO
// through which the receiver worker delivers results to callers. It never
// blocks a producer on a slow consumer; buffered items accumulate on the
// heap rather than in a fixed-capacity channel.
type OutboundQueue struct {
	in  chan QueueItem
	out chan QueueItem
}

// NewOutboundQueue constructs an empty queue and starts its pump goroutine.
func NewOutboundQueue() *OutboundQueue {
	q := &OutboundQueue{
		in:  make(chan QueueItem),
		out: make(chan QueueItem),
	}
	go q.pump()
	return q
}

func (q *OutboundQueue) pump() {
	var buf []QueueItem

	for {
		if len(buf) == 0 {
			item, ok := <-q.in
			if !ok {
				close(q.out)
				return
			}
			buf = append(buf, item)
			continue
		}

		select {
		case item, ok := <-q.in:
			if !ok {
				for _, it := range buf {
					q.out <- it
				}
				close(q.out)
				return
			}
			buf = append(buf, item)
		case q.out <- buf[0]:
			buf = buf[1:]
		}
	}
}

func (q *OutboundQueue) push(item QueueItem) {
	q.in <- item
}

func (q *OutboundQueue) closeProducer() {
	close(q.in)
}

// Receive blocks until the next item is available. The second return value
// is false once the queue has been fully drained after its producer closed.
func (q *OutboundQueue) Receive() (QueueItem, bool) {
	item, ok := <-q.out
	return item, ok
}

// ServerMessageFilter decides whether a parsed frame is of interest to the
// consumer in all-message mode.
type ServerMessageFilter func(ServerMessage) bool

// DefaultServerMessageFilter accepts exactly the messages a high-level
// consumer needs outside of data-row streaming: errors, empty-result
// signals, parameter/row shape descriptions, and transaction boundaries.
// Startup-only and non-informational frames are suppressed, and so are
// data-affecting frames (DataRow, CommandComplete and the like): the
// receiver runs only in all-message mode, so under this filter those frames
// are dropped, not delivered anywhere else. Notifications reach the
// notification handler regardless of this filter's verdict.
func DefaultServerMessageFilter(m ServerMessage) bool {
	switch m {
	case ServerErrorResponse, ServerNoData, ServerParameterDescription,
		ServerReady, ServerRowDescription:
		return true
	default:
		return false
	}
}

// NotificationHandler is invoked synchronously from the receiver worker for
// every NotificationResponse, before the filter decision for that frame is
// applied — so a handler invocation for a given connection is always
// visible before any later message on that connection.
type NotificationHandler func(Notification)

// receiverHandle is the object a receiver worker holds strongly for as
// long as it runs. The connection holds only a weak.Pointer to it, so a
// dropped connection handle does not by itself keep the worker alive — the
// worker's own goroutine, and whatever it closes over, is what keeps it
// running. Stopping the worker is done by closing its transport, which
// aborts the worker's in-flight Receive call.
type receiverHandle struct {
	transport Transport
	stopped   atomic.Bool
}

func (h *receiverHandle) stop() {
	if h.stopped.CompareAndSwap(false, true) {
		h.transport.Close()
	}
}

// receiver lets the owning connection stop the background worker without
// keeping it alive by reference.
type receiver struct {
	weakHandle weak.Pointer[receiverHandle]
	queue      *OutboundQueue
}

// startReceiver spawns the background worker in all-message mode and
// returns a receiver the connection can use to stop it. The handle is
// recorded before the worker goroutine starts, so a concurrent stop can
// never race a worker that has not yet registered its identity.
func startReceiver(t Transport, logger *slog.Logger, filter ServerMessageFilter, onNotify NotificationHandler) *receiver {
	if logger == nil {
		logger = slog.Default()
	}
	if filter == nil {
		filter = DefaultServerMessageFilter
	}

	handle := &receiverHandle{transport: t}
	queue := NewOutboundQueue()

	r := &receiver{
		weakHandle: weak.Make(handle),
		queue:      queue,
	}

	go runReceiver(handle, logger, filter, onNotify, queue)

	return r
}

// runReceiver is the worker loop. Any error it encounters is terminal: it
// writes exactly one QueueItem carrying a ReceiverException and returns
// without touching the queue again — unless the error was caused by this
// worker's own handle being stopped, in which case the shutdown is expected
// and no terminal value is written.
func runReceiver(handle *receiverHandle, logger *slog.Logger, filter ServerMessageFilter, onNotify NotificationHandler, queue *OutboundQueue) {
	defer queue.closeProducer()

	readMore := transportReadMore(handle.transport)
	var buf []byte

	for {
		remaining, frame, err := DecodeNextServerMessage(buf, readMore)
		buf = remaining
		if err != nil {
			if handle.stopped.Load() {
				return
			}
			queue.push(QueueItem{Err: &pgerror.ReceiverException{Cause: err}})
			return
		}

		if frame.Type == ServerNotificationResponse && onNotify != nil {
			onNotify(frame.Notification)
		}

		if !filter(frame.Type) {
			continue
		}

		logger.Debug("<- dispatching message", slog.String("type", frame.Type.String()))
		queue.push(QueueItem{Frame: frame})
	}
}

// stop interrupts the worker if it is still running. It is a no-op if the
// worker has already exited and its handle has been collected.
func (r *receiver) stop() {
	if handle := r.weakHandle.Value(); handle != nil {
		handle.stop()
	}
}
